package usecase

import (
	"baggage-claim-service/internal/domain/entity"
)

// BaggageObserver receives baggage claim notifications from a provider
type BaggageObserver interface {
	// OnNext delivers one baggage update. A zero carousel means the flight's
	// baggage has been claimed and it should be removed.
	OnNext(info entity.BaggageInfo) error

	// OnCompleted signals that no further updates will follow
	OnCompleted()
}

// BaggageObservable is a provider that observers can subscribe to
type BaggageObservable interface {
	// Subscribe attaches the observer, replaying the current flights to it,
	// and returns the handle that detaches it again.
	Subscribe(observer BaggageObserver) (*Unsubscriber, error)
}
