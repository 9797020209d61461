package repository

import (
	"context"

	"baggage-claim-service/internal/domain/entity"
)

// BaggageJournalRepository defines the interface for the notification audit trail
type BaggageJournalRepository interface {
	Append(ctx context.Context, event *entity.BaggageEvent) error
	FindByFlightNumber(ctx context.Context, flightNo int, limit int) ([]*entity.BaggageEvent, error)
}
