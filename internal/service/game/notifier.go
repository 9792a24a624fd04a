package game

import "github.com/iamasit07/connect-four/internal/domain"

// Notifier receives every event a session emits. Implementations must not
// block; they are called with the session lock held.
type Notifier interface {
	Publish(evt domain.GameEvent)
}

// Notifiers fans one event out to several notifiers.
type Notifiers []Notifier

func (n Notifiers) Publish(evt domain.GameEvent) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Publish(evt)
		}
	}
}

type discard struct{}

func (discard) Publish(domain.GameEvent) {}
