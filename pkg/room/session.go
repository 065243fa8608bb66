package room

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/playable"
	"ridethebus-server/pkg/playable/ridethebus"
)

const eventHistoryLimit = 25

// Session is a single player's game and the clients watching it
type Session struct {
	*playable.EventPresenter

	ID   string
	Name string
	Game *ridethebus.Game

	logger logrus.FieldLogger
	clock  quartz.Clock
	store  bankroll.Store

	lock       sync.RWMutex
	clients    map[*Client]bool
	history    []*playable.Event
	lastActive time.Time
}

func newSession(ctx context.Context, id, name string, logger logrus.FieldLogger, store bankroll.Store, clock quartz.Clock, options ridethebus.Options) (*Session, error) {
	s := &Session{
		ID:         id,
		Name:       name,
		logger:     logger,
		clock:      clock,
		store:      store,
		clients:    make(map[*Client]bool),
		lastActive: clock.Now(),
	}

	s.EventPresenter = playable.NewEventPresenter(clock, s.broadcast)

	game, err := ridethebus.NewGame(ctx, logger, s, store, clock, options)
	if err != nil {
		return nil, err
	}

	s.Game = game
	return s, nil
}

// Touch marks the session as in use
func (s *Session) Touch() {
	s.lock.Lock()
	s.lastActive = s.clock.Now()
	s.lock.Unlock()
}

// LastActive returns the last time the session was used
func (s *Session) LastActive() time.Time {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.lastActive
}

// AddClient subscribes a client to the session's events
// The recent event history is replayed to the client first
func (s *Session) AddClient(client *Client) {
	s.lock.Lock()
	defer s.lock.Unlock()

	client.session = s
	s.clients[client] = true
	s.lastActive = s.clock.Now()

	for _, e := range s.history {
		client.Send(e)
	}

	s.logger.WithField("client", client.String()).Debug("client connected")
}

// RemoveClient unsubscribes a client
// Returns true if that was the last client
func (s *Session) RemoveClient(client *Client) (lastClient bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.clients, client)
	s.logger.WithField("client", client.String()).Debug("client disconnected")

	return len(s.clients) == 0
}

// Clients will return a slice of connected (at the time) clients
func (s *Session) Clients() []*Client {
	s.lock.RLock()
	defer s.lock.RUnlock()

	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}

	return clients
}

// History returns the most recent events
func (s *Session) History() []*playable.Event {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]*playable.Event(nil), s.history...)
}

// broadcast receives every presenter event from the game
func (s *Session) broadcast(e *playable.Event) {
	s.lock.Lock()
	defer s.lock.Unlock()

	h := append(s.history, e)
	if count := len(h); count > eventHistoryLimit {
		h = h[count-eventHistoryLimit:]
	}
	s.history = h

	for client := range s.clients {
		if !client.Send(e) {
			s.logger.WithField("client", client.String()).Warn("client is not keeping up, dropped event")
		}
	}
}

// close stops the game and disconnects every client
func (s *Session) close(reason string) {
	s.Game.Close()

	for _, client := range s.Clients() {
		select {
		case client.Close <- reason:
		default:
		}
	}
}
