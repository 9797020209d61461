package usecase

import (
	"context"
	"fmt"
	"time"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/internal/domain/repository"
	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/metrics"
)

// JournalObserver appends every notification it receives to a journal
// repository, giving an audit trail of what the monitors were sent.
type JournalObserver struct {
	ctx          context.Context
	name         string
	journal      repository.BaggageJournalRepository
	writeTimeout time.Duration
	logger       logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewJournalObserver creates a new journal observer. Writes derive their
// context from ctx and are bounded by writeTimeout when it is positive.
func NewJournalObserver(
	ctx context.Context,
	name string,
	journal repository.BaggageJournalRepository,
	writeTimeout time.Duration,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *JournalObserver {
	return &JournalObserver{
		ctx:          ctx,
		name:         name,
		journal:      journal,
		writeTimeout: writeTimeout,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
	}
}

// OnNext records an assigned or cleared carousel
func (j *JournalObserver) OnNext(info entity.BaggageInfo) error {
	event := entity.NewBaggageEvent(j.name, info, j.now().UTC())
	if err := j.append(event); err != nil {
		return fmt.Errorf("failed to journal flight %d: %w", info.FlightNumber, err)
	}
	return nil
}

// OnCompleted records the end of the stream
func (j *JournalObserver) OnCompleted() {
	if err := j.append(entity.NewCompletedEvent(j.name, j.now().UTC())); err != nil {
		j.logger.Error("Failed to journal completion", "journal", j.name, "error", err)
	}
}

func (j *JournalObserver) append(event *entity.BaggageEvent) error {
	ctx := j.ctx
	if j.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	err := j.journal.Append(ctx, event)
	if j.metrics != nil {
		j.metrics.JournalAppendDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			j.metrics.ErrorsCount.WithLabelValues("journal_append").Inc()
		}
	}
	if err != nil {
		return err
	}

	j.logger.Debug("Journaled baggage event",
		"journal", j.name,
		"action", event.Action,
		"flightNumber", event.FlightNumber)
	return nil
}
