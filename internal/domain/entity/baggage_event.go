// internal/domain/entity/baggage_event.go
package entity

import (
	"time"
)

// Journal actions
const (
	ActionAssigned  = "assigned"
	ActionCleared   = "cleared"
	ActionCompleted = "completed"
)

// BaggageEvent is one notification as seen by a journal observer
type BaggageEvent struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Observer     string    `bson:"observer" json:"observer"`
	Action       string    `bson:"action" json:"action"`
	FlightNumber int       `bson:"flightNumber" json:"flightNumber"`
	From         string    `bson:"from" json:"from"`
	Carousel     int       `bson:"carousel" json:"carousel"`
	RecordedAt   time.Time `bson:"recordedAt" json:"recordedAt"`
}

// NewBaggageEvent builds the journal entry for a notification
func NewBaggageEvent(observer string, info BaggageInfo, at time.Time) *BaggageEvent {
	action := ActionAssigned
	if !info.IsBaggageClaimAssigned() {
		action = ActionCleared
	}
	return &BaggageEvent{
		Observer:     observer,
		Action:       action,
		FlightNumber: info.FlightNumber,
		From:         info.From,
		Carousel:     info.Carousel,
		RecordedAt:   at,
	}
}

// NewCompletedEvent builds the journal entry for the end of the stream
func NewCompletedEvent(observer string, at time.Time) *BaggageEvent {
	return &BaggageEvent{
		Observer:   observer,
		Action:     ActionCompleted,
		RecordedAt: at,
	}
}
