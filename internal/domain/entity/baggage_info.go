// internal/domain/entity/baggage_info.go
package entity

// BaggageInfo describes where baggage from an arriving flight can be claimed.
// A zero Carousel means no carousel is assigned: the baggage has been
// collected and the flight should be dropped from every display.
//
// BaggageInfo is a comparable value; == is full-value equality.
type BaggageInfo struct {
	FlightNumber int
	From         string
	Carousel     int
}

// NewBaggageInfo creates baggage info for a flight and its assigned carousel
func NewBaggageInfo(flightNo int, from string, carousel int) BaggageInfo {
	return BaggageInfo{
		FlightNumber: flightNo,
		From:         from,
		Carousel:     carousel,
	}
}

// NewClearedBaggageInfo creates the removal signal for a flight
func NewClearedBaggageInfo(flightNo int) BaggageInfo {
	return BaggageInfo{FlightNumber: flightNo}
}

// IsBaggageClaimAssigned returns true if a carousel has been assigned
func (b BaggageInfo) IsBaggageClaimAssigned() bool {
	return b.Carousel != 0
}

// SameFlight reports whether both values refer to the same flight number,
// ignoring origin and carousel.
func (b BaggageInfo) SameFlight(other BaggageInfo) bool {
	return b.FlightNumber == other.FlightNumber
}
