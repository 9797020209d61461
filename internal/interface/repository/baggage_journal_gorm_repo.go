package repository

import (
	"context"
	"strconv"
	"time"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/internal/domain/repository"

	"gorm.io/gorm"
)

var _ repository.BaggageJournalRepository = (*GormBaggageJournalRepository)(nil)

// GormBaggageJournalRepository implements the BaggageJournalRepository interface
type GormBaggageJournalRepository struct {
	db *gorm.DB
}

// NewGormBaggageJournalRepository creates a new GORM baggage journal repository
func NewGormBaggageJournalRepository(db *gorm.DB) *GormBaggageJournalRepository {
	return &GormBaggageJournalRepository{
		db: db,
	}
}

// BaggageEvents GORM model for database mapping
type BaggageEvents struct {
	ID           uint      `gorm:"primaryKey"`
	Observer     string    `gorm:"column:observer;index"`
	Action       string    `gorm:"column:action"`
	FlightNumber int       `gorm:"column:flight_number;index:idx_baggage_events_flight"`
	Origin       string    `gorm:"column:origin"`
	Carousel     int       `gorm:"column:carousel"`
	RecordedAt   time.Time `gorm:"column:recorded_at;index:idx_baggage_events_flight,sort:desc"`
}

// TableName overrides the default table name
func (BaggageEvents) TableName() string {
	return "t_baggage_events"
}

// Migrate creates or updates the journal table
func (r *GormBaggageJournalRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&BaggageEvents{})
}

// Append inserts one event and sets its ID
func (r *GormBaggageJournalRepository) Append(ctx context.Context, event *entity.BaggageEvent) error {
	model := toBaggageEventModel(event)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	event.ID = strconv.FormatUint(uint64(model.ID), 10)
	return nil
}

// FindByFlightNumber returns the latest events for a flight, newest first
func (r *GormBaggageJournalRepository) FindByFlightNumber(ctx context.Context, flightNo int, limit int) ([]*entity.BaggageEvent, error) {
	query := r.db.WithContext(ctx).
		Where("flight_number = ?", flightNo).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []BaggageEvents
	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.BaggageEvent, 0, len(models))
	for _, m := range models {
		events = append(events, toBaggageEventEntity(m))
	}
	return events, nil
}

func toBaggageEventModel(event *entity.BaggageEvent) BaggageEvents {
	return BaggageEvents{
		Observer:     event.Observer,
		Action:       event.Action,
		FlightNumber: event.FlightNumber,
		Origin:       event.From,
		Carousel:     event.Carousel,
		RecordedAt:   event.RecordedAt,
	}
}

// Convert GORM model to domain entity
func toBaggageEventEntity(m BaggageEvents) *entity.BaggageEvent {
	return &entity.BaggageEvent{
		ID:           strconv.FormatUint(uint64(m.ID), 10),
		Observer:     m.Observer,
		Action:       m.Action,
		FlightNumber: m.FlightNumber,
		From:         m.Origin,
		Carousel:     m.Carousel,
		RecordedAt:   m.RecordedAt,
	}
}
