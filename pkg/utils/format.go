package utils

import "fmt"

// Column widths of a rendered flight line
const (
	OriginWidth   = 20
	FlightWidth   = 5
	CarouselWidth = 3
)

// FormatFlightLine renders one arrivals line: origin left-justified to 20,
// flight number right-justified to 5 and carousel right-justified to 3.
// Widths are minimums; longer values are not truncated.
func FormatFlightLine(from string, flightNo, carousel int) string {
	return fmt.Sprintf("%-*s %*d  %*d", OriginWidth, from, FlightWidth, flightNo, CarouselWidth, carousel)
}
