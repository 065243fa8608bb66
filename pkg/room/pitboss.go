package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/util"
	"ridethebus-server/pkg/bankroll"
	"ridethebus-server/pkg/playable/ridethebus"
)

// ErrSessionNotFound is returned when a session ID is unknown
var ErrSessionNotFound = errors.New("session not found")

// StoreFactory returns the bankroll store for a session
type StoreFactory func(ctx context.Context, sessionID string) (bankroll.Store, error)

// NewMemoryStoreFactory keeps an in-memory bankroll per session ID for the life of the process
func NewMemoryStoreFactory() StoreFactory {
	var lock sync.Mutex
	stores := make(map[string]*bankroll.MemoryStore)

	return func(_ context.Context, sessionID string) (bankroll.Store, error) {
		lock.Lock()
		defer lock.Unlock()

		store, found := stores[sessionID]
		if !found {
			store = bankroll.NewMemoryStore()
			stores[sessionID] = store
		}

		return store, nil
	}
}

// Options configure the PitBoss
type Options struct {
	Game ridethebus.Options

	// IdleTimeout ends a session that has not been used in this long, 0 keeps sessions forever
	IdleTimeout time.Duration
}

// PitBoss is responsible for dispatching players to their sessions
type PitBoss struct {
	logger       logrus.FieldLogger
	clock        quartz.Clock
	storeFactory StoreFactory
	options      Options

	lock     sync.RWMutex
	sessions map[string]*Session
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, clock quartz.Clock, storeFactory StoreFactory, options Options) *PitBoss {
	return &PitBoss{
		logger:       logger,
		clock:        clock,
		storeFactory: storeFactory,
		options:      options,
		sessions:     make(map[string]*Session),
	}
}

// NewSession starts a new game with a fresh session ID
func (p *PitBoss) NewSession(ctx context.Context) (*Session, error) {
	return p.openSession(ctx, uuid.New().String())
}

// ResumeSession returns the session by ID, starting it again from its stored bankroll if it is not running
func (p *PitBoss) ResumeSession(ctx context.Context, id string) (*Session, error) {
	if s, err := p.Session(id); err == nil {
		return s, nil
	}

	return p.openSession(ctx, id)
}

func (p *PitBoss) openSession(ctx context.Context, id string) (*Session, error) {
	logger := p.logger.WithField("session", id)

	store, err := p.storeFactory(ctx, id)
	if err != nil {
		return nil, err
	}

	s, err := newSession(ctx, id, util.GetRandomName(), logger, store, p.clock, p.options.Game)
	if err != nil {
		return nil, err
	}

	p.lock.Lock()
	if existing, found := p.sessions[id]; found {
		p.lock.Unlock()

		// lost a race with another request for the same ID
		s.Game.Close()
		existing.Touch()
		return existing, nil
	}

	p.sessions[id] = s
	p.lock.Unlock()

	logger.WithField("name", s.Name).Info("session started")
	return s, nil
}

// Session returns the session by ID and marks it as in use
func (p *PitBoss) Session(id string) (*Session, error) {
	p.lock.RLock()
	s, found := p.sessions[id]
	p.lock.RUnlock()

	if !found {
		return nil, ErrSessionNotFound
	}

	s.Touch()
	return s, nil
}

// Len returns the number of active sessions
func (p *PitBoss) Len() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.sessions)
}

// EndSession stops the session's game and forgets it
// The stored bankroll is kept so the session can be resumed
func (p *PitBoss) EndSession(id string) error {
	s, err := p.removeSession(id)
	if err != nil {
		return err
	}

	s.close("session ended")
	s.logger.Info("session ended")
	return nil
}

// DiscardSession ends the session and deletes its stored bankroll
func (p *PitBoss) DiscardSession(ctx context.Context, id string) error {
	s, err := p.removeSession(id)
	if err != nil {
		return err
	}

	s.close("session discarded")

	if d, ok := s.store.(bankroll.Deleter); ok {
		if err := d.Delete(ctx); err != nil {
			s.logger.WithError(err).Error("could not delete bankroll")
			return err
		}
	}

	s.logger.Info("session discarded")
	return nil
}

func (p *PitBoss) removeSession(id string) (*Session, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	s, found := p.sessions[id]
	if !found {
		return nil, ErrSessionNotFound
	}

	delete(p.sessions, id)
	return s, nil
}

// ReapIdle ends every session that has been idle for longer than the idle timeout
// Returns the number of sessions ended
func (p *PitBoss) ReapIdle() int {
	if p.options.IdleTimeout <= 0 {
		return 0
	}

	cutoff := p.clock.Now().Add(-p.options.IdleTimeout)

	p.lock.RLock()
	idle := make([]string, 0)
	for id, s := range p.sessions {
		if s.LastActive().Before(cutoff) && len(s.Clients()) == 0 {
			idle = append(idle, id)
		}
	}
	p.lock.RUnlock()

	for _, id := range idle {
		_ = p.EndSession(id)
	}

	return len(idle)
}

// StartShift reaps idle sessions until the context is done
func (p *PitBoss) StartShift(ctx context.Context) {
	if p.options.IdleTimeout <= 0 {
		return
	}

	p.clock.TickerFunc(ctx, p.options.IdleTimeout, func() error {
		if n := p.ReapIdle(); n > 0 {
			p.logger.WithField("sessions", n).Info("reaped idle sessions")
		}

		return nil
	}, "pitboss", "reap")
}

// Close ends every session
func (p *PitBoss) Close() {
	p.lock.RLock()
	ids := make([]string, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	p.lock.RUnlock()

	for _, id := range ids {
		_ = p.EndSession(id)
	}
}
