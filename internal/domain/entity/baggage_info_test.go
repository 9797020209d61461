package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaggageInfo_Equality(t *testing.T) {
	a := NewBaggageInfo(712, "Detroit", 3)
	b := NewBaggageInfo(712, "Detroit", 3)
	c := NewBaggageInfo(712, "Kalamazoo", 3)

	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.True(t, a.SameFlight(c))
	assert.False(t, a.SameFlight(NewBaggageInfo(400, "Detroit", 3)))
}

func TestNewClearedBaggageInfo(t *testing.T) {
	info := NewClearedBaggageInfo(712)

	assert.Equal(t, 712, info.FlightNumber)
	assert.Empty(t, info.From)
	assert.Zero(t, info.Carousel)
	assert.False(t, info.IsBaggageClaimAssigned())
	assert.True(t, NewBaggageInfo(712, "Detroit", 3).IsBaggageClaimAssigned())
}

func TestNewBaggageEvent(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	assigned := NewBaggageEvent("journal", NewBaggageInfo(511, "San Francisco", 2), at)
	assert.Equal(t, ActionAssigned, assigned.Action)
	assert.Equal(t, 511, assigned.FlightNumber)
	assert.Equal(t, "San Francisco", assigned.From)
	assert.Equal(t, 2, assigned.Carousel)
	assert.Equal(t, at, assigned.RecordedAt)

	cleared := NewBaggageEvent("journal", NewClearedBaggageInfo(511), at)
	assert.Equal(t, ActionCleared, cleared.Action)

	completed := NewCompletedEvent("journal", at)
	assert.Equal(t, ActionCompleted, completed.Action)
	assert.Zero(t, completed.FlightNumber)
}
