package playable

import (
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"ridethebus-server/pkg/deck"
)

// EventType is the kind of presentation event
type EventType string

// EventType constants
const (
	EventRenderCard  EventType = "renderCard"
	EventNotify      EventType = "notify"
	EventCelebrate   EventType = "celebrate"
	EventControls    EventType = "controls"
	EventWagerBounds EventType = "wagerBounds"
	EventHint        EventType = "hint"
	EventClearCards  EventType = "clearCards"
)

// Event is a Presenter call in a form that can be queued or sent to a client
type Event struct {
	UUID       string      `json:"uuid"`
	Type       EventType   `json:"type"`
	Card       *deck.Card  `json:"card,omitempty"`
	Message    string      `json:"message,omitempty"`
	Color      string      `json:"color,omitempty"`
	DurationMS int64       `json:"durationMs,omitempty"`
	Intensity  int         `json:"intensity,omitempty"`
	Controls   []ControlID `json:"controls,omitempty"`
	Enabled    bool        `json:"enabled"`
	Min        int         `json:"min"`
	Max        int         `json:"max"`
	Hint       string      `json:"hint,omitempty"`
	Time       time.Time   `json:"time"`
}

// EventPresenter turns Presenter calls into Events and hands them to a sink
type EventPresenter struct {
	clock quartz.Clock
	sink  func(*Event)
}

// NewEventPresenter returns a presenter that calls sink for every event
// Events are stamped with the clock's time
func NewEventPresenter(clock quartz.Clock, sink func(*Event)) *EventPresenter {
	return &EventPresenter{clock: clock, sink: sink}
}

func (e *EventPresenter) newEvent(eventType EventType) *Event {
	return &Event{
		UUID: uuid.New().String(),
		Type: eventType,
		Time: e.clock.Now(),
	}
}

// RenderCard emits an EventRenderCard
func (e *EventPresenter) RenderCard(card *deck.Card) {
	ev := e.newEvent(EventRenderCard)
	ev.Card = card
	e.sink(ev)
}

// Notify emits an EventNotify
func (e *EventPresenter) Notify(message, color string, duration time.Duration) {
	ev := e.newEvent(EventNotify)
	ev.Message = message
	ev.Color = color
	ev.DurationMS = duration.Milliseconds()
	e.sink(ev)
}

// Celebrate emits an EventCelebrate
func (e *EventPresenter) Celebrate(intensity int) {
	ev := e.newEvent(EventCelebrate)
	ev.Intensity = intensity
	e.sink(ev)
}

// SetControlsEnabled emits an EventControls
func (e *EventPresenter) SetControlsEnabled(ids []ControlID, enabled bool) {
	ev := e.newEvent(EventControls)
	ev.Controls = append([]ControlID(nil), ids...)
	ev.Enabled = enabled
	e.sink(ev)
}

// SetWagerBounds emits an EventWagerBounds
func (e *EventPresenter) SetWagerBounds(min, max int) {
	ev := e.newEvent(EventWagerBounds)
	ev.Min = min
	ev.Max = max
	e.sink(ev)
}

// ShowHint emits an EventHint
func (e *EventPresenter) ShowHint(text string) {
	ev := e.newEvent(EventHint)
	ev.Hint = text
	e.sink(ev)
}

// ClearCards emits an EventClearCards
func (e *EventPresenter) ClearCards() {
	e.sink(e.newEvent(EventClearCards))
}
