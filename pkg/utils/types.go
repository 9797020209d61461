package utils

import "baggage-claim-service/internal/domain/entity"

// Feed verbs
const (
	VerbUpdate      = "update"
	VerbClear       = "clear"
	VerbSubscribe   = "subscribe"
	VerbUnsubscribe = "unsubscribe"
	VerbClose       = "close"
)

// FeedCommand is one parsed line of a feed script
type FeedCommand struct {
	Line    int
	Verb    string
	Info    entity.BaggageInfo
	Monitor string
}

// String renders the command back in feed syntax
func (c FeedCommand) String() string {
	switch c.Verb {
	case VerbUpdate:
		return VerbUpdate + " " + itoa(c.Info.FlightNumber) + "," + c.Info.From + "," + itoa(c.Info.Carousel)
	case VerbClear:
		return VerbClear + " " + itoa(c.Info.FlightNumber)
	case VerbSubscribe, VerbUnsubscribe:
		return c.Verb + " " + c.Monitor
	default:
		return c.Verb
	}
}
