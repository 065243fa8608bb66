package playable

import (
	"sync"

	"github.com/coder/quartz"
)

// Recorder is a Presenter that keeps every event, useful in tests
type Recorder struct {
	*EventPresenter

	lock   sync.Mutex
	events []*Event
}

// NewRecorder returns an empty Recorder
func NewRecorder(clock quartz.Clock) *Recorder {
	r := &Recorder{}
	r.EventPresenter = NewEventPresenter(clock, func(e *Event) {
		r.lock.Lock()
		r.events = append(r.events, e)
		r.lock.Unlock()
	})

	return r
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []*Event {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]*Event(nil), r.events...)
}

// EventsOfType returns the recorded events of a given type
func (r *Recorder) EventsOfType(eventType EventType) []*Event {
	events := make([]*Event, 0)
	for _, e := range r.Events() {
		if e.Type == eventType {
			events = append(events, e)
		}
	}

	return events
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.events = nil
	r.lock.Unlock()
}
