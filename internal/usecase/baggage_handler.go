package usecase

import (
	"errors"
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/metrics"
)

// BaggageHandler is the provider of arriving flights and their baggage claim
// carousels. It keeps the flights that currently have a carousel assigned and
// the observers subscribed to updates.
//
// A flight is removed when an update with a zero carousel arrives for its
// flight number.
type BaggageHandler struct {
	mu            sync.RWMutex
	subscriptions []subscription
	nextID        uint64
	flights       []entity.BaggageInfo
	logger        logger.Logger
	metrics       *metrics.Metrics
}

// ErrNilObserver is returned when subscribing a nil observer
var ErrNilObserver = errors.New("observer is nil")

type subscription struct {
	id       uint64
	observer BaggageObserver
}

// NewBaggageHandler creates a new baggage handler. Both arguments may be nil.
func NewBaggageHandler(log logger.Logger, m *metrics.Metrics) *BaggageHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &BaggageHandler{
		logger:  log,
		metrics: m,
	}
}

// Unsubscriber detaches one subscription from its handler
type Unsubscriber struct {
	handler *BaggageHandler
	id      uint64
	once    sync.Once
}

// Unsubscribe removes the subscription from the handler if it is still
// attached. Only the first call on a handle has an effect.
func (u *Unsubscriber) Unsubscribe() {
	u.once.Do(func() {
		u.handler.detach(u.id)
	})
}

// Subscribe attaches an observer. A new observer is sent every current flight
// before Subscribe returns. Subscribing an attached observer again replays
// nothing but still returns a usable handle.
//
// Observers are matched by ==. Values of a type that cannot be compared,
// such as a struct holding a map, are never matched and each Subscribe
// creates a separate subscription.
func (h *BaggageHandler) Subscribe(observer BaggageObserver) (*Unsubscriber, error) {
	if observer == nil {
		return nil, ErrNilObserver
	}

	h.mu.Lock()
	i := h.indexOfObserver(observer)
	attached := i >= 0
	var id uint64
	var replay []entity.BaggageInfo
	if attached {
		id = h.subscriptions[i].id
	} else {
		h.nextID++
		id = h.nextID
		h.subscriptions = append(h.subscriptions, subscription{id: id, observer: observer})
		replay = append(replay, h.flights...)
		h.setObserverGauge()
	}
	h.mu.Unlock()

	handle := &Unsubscriber{handler: h, id: id}
	if attached {
		return handle, nil
	}

	h.logger.Debug("Observer subscribed", "replay", len(replay))

	var errs error
	for _, info := range replay {
		errs = multierr.Append(errs, h.deliver(observer, info))
	}
	return handle, errs
}

// UpdateFlight signals that all baggage of a flight has been claimed
func (h *BaggageHandler) UpdateFlight(flightNo int) error {
	return h.Update(entity.NewClearedBaggageInfo(flightNo))
}

// Update applies baggage info for an arrived flight.
//
// With no carousel assigned, every stored entry for the flight number is
// removed and observers receive the incoming info once per removed entry.
// Otherwise the info is stored and broadcast unless an identical value is
// already stored. Unknown removals and duplicates are silent.
//
// Every attached observer is notified even if some fail; their errors are
// combined and returned.
func (h *BaggageHandler) Update(info entity.BaggageInfo) error {
	if !info.IsBaggageClaimAssigned() {
		return h.remove(info)
	}
	return h.add(info)
}

func (h *BaggageHandler) add(info entity.BaggageInfo) error {
	h.mu.Lock()
	if h.indexOfFlight(info) >= 0 {
		h.mu.Unlock()
		h.countUpdate(metrics.ResultDuplicate)
		return nil
	}
	h.flights = append(h.flights, info)
	h.setFlightGauge()
	observers := h.snapshotObservers()
	h.mu.Unlock()

	h.logger.Debug("Flight added", "flightNumber", info.FlightNumber, "from", info.From, "carousel", info.Carousel)
	h.countUpdate(metrics.ResultAdded)

	return h.broadcast(observers, info)
}

func (h *BaggageHandler) remove(info entity.BaggageInfo) error {
	h.mu.Lock()
	kept := h.flights[:0:0]
	removed := 0
	for _, flight := range h.flights {
		if flight.SameFlight(info) {
			removed++
			continue
		}
		kept = append(kept, flight)
	}
	if removed == 0 {
		h.mu.Unlock()
		h.countUpdate(metrics.ResultUnknown)
		return nil
	}
	h.flights = kept
	h.setFlightGauge()
	observers := h.snapshotObservers()
	h.mu.Unlock()

	h.logger.Debug("Flight removed", "flightNumber", info.FlightNumber, "entries", removed)
	h.countUpdate(metrics.ResultRemoved)

	var errs error
	for i := 0; i < removed; i++ {
		errs = multierr.Append(errs, h.broadcast(observers, info))
	}
	return errs
}

// LastBaggageClaimed is called when the last flight of the day has been
// processed. Every observer is completed and then detached; the handler can
// still be used afterwards.
func (h *BaggageHandler) LastBaggageClaimed() {
	h.mu.Lock()
	subscriptions := h.subscriptions
	h.subscriptions = nil
	h.setObserverGauge()
	h.mu.Unlock()

	for _, sub := range subscriptions {
		sub.observer.OnCompleted()
	}

	h.logger.Info("Last baggage claimed", "observers", len(subscriptions))
}

// Flights returns a copy of the flights that currently have a carousel
func (h *BaggageHandler) Flights() []entity.BaggageInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	flights := make([]entity.BaggageInfo, len(h.flights))
	copy(flights, h.flights)
	return flights
}

// ObserverCount returns the number of attached observers
func (h *BaggageHandler) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions)
}

func (h *BaggageHandler) detach(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, sub := range h.subscriptions {
		if sub.id != id {
			continue
		}
		h.subscriptions = append(h.subscriptions[:i:i], h.subscriptions[i+1:]...)
		h.setObserverGauge()
		h.logger.Debug("Observer unsubscribed", "remaining", len(h.subscriptions))
		return
	}
}

// broadcast must be called without holding mu so that observers may
// unsubscribe from inside OnNext.
func (h *BaggageHandler) broadcast(observers []BaggageObserver, info entity.BaggageInfo) error {
	var errs error
	for _, observer := range observers {
		errs = multierr.Append(errs, h.deliver(observer, info))
	}
	return errs
}

func (h *BaggageHandler) deliver(observer BaggageObserver, info entity.BaggageInfo) error {
	err := observer.OnNext(info)
	if h.metrics != nil {
		h.metrics.NotificationsSent.Inc()
		if err != nil {
			h.metrics.NotificationErrors.Inc()
		}
	}
	if err != nil {
		h.logger.Error("Observer rejected notification", "flightNumber", info.FlightNumber, "error", err)
	}
	return err
}

func (h *BaggageHandler) snapshotObservers() []BaggageObserver {
	observers := make([]BaggageObserver, len(h.subscriptions))
	for i, sub := range h.subscriptions {
		observers[i] = sub.observer
	}
	return observers
}

func (h *BaggageHandler) indexOfObserver(observer BaggageObserver) int {
	for i, sub := range h.subscriptions {
		if sameObserver(sub.observer, observer) {
			return i
		}
	}
	return -1
}

// sameObserver reports a == b without panicking on dynamic types that are
// not comparable.
func sameObserver(a, b BaggageObserver) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

// indexOfFlight matches on the full value, not just the flight number.
func (h *BaggageHandler) indexOfFlight(info entity.BaggageInfo) int {
	for i, flight := range h.flights {
		if flight == info {
			return i
		}
	}
	return -1
}

func (h *BaggageHandler) countUpdate(result string) {
	if h.metrics != nil {
		h.metrics.UpdatesTotal.WithLabelValues(result).Inc()
	}
}

func (h *BaggageHandler) setFlightGauge() {
	if h.metrics != nil {
		h.metrics.ActiveFlights.Set(float64(len(h.flights)))
	}
}

func (h *BaggageHandler) setObserverGauge() {
	if h.metrics != nil {
		h.metrics.AttachedObservers.Set(float64(len(h.subscriptions)))
	}
}
