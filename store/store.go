package store

import (
	"log/slog"
	"sync"

	"github.com/Dosada05/scrabble-director/metrics"
	"github.com/Dosada05/scrabble-director/models"
)

const subscriptionBuffer = 8

// Dispatcher is what producers of actions depend on.
type Dispatcher interface {
	Dispatch(a Action) *models.Tournament
}

// Applier dispatches and reports whether the action changed the snapshot.
type Applier interface {
	Apply(a Action) (*models.Tournament, bool)
}

// Snapshotter gives read access to the current snapshot.
type Snapshotter interface {
	Snapshot() *models.Tournament
}

// Store owns the single current tournament snapshot. All changes go through
// Dispatch, which applies actions one at a time in call order.
type Store struct {
	logger *slog.Logger

	mu    sync.Mutex
	state *models.Tournament

	subMu sync.Mutex
	subs  map[*Subscription]struct{}
}

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger,
		subs:   make(map[*Subscription]struct{}),
	}
}

// Snapshot returns the current snapshot. The value must be treated as
// read-only; it is never changed after being published.
func (s *Store) Snapshot() *models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current snapshot and publishes the result to
// every subscriber before returning it. An action that leaves the snapshot
// unchanged is not published.
func (s *Store) Dispatch(a Action) *models.Tournament {
	next, _ := s.Apply(a)
	return next
}

// Apply is Dispatch that also reports whether a changed the snapshot.
func (s *Store) Apply(a Action) (*models.Tournament, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := Kind(a)
	next := Reduce(s.state, a)
	if next == s.state {
		metrics.ActionsDiscarded.WithLabelValues(kind).Inc()
		current := 0
		if s.state != nil {
			current = s.state.ID
		}
		s.logger.Debug("action discarded",
			slog.String("action", kind),
			slog.Int("tournament_id", a.TournamentID()),
			slog.Int("current_tournament_id", current),
		)
		return s.state, false
	}

	s.state = next
	metrics.ActionsDispatched.WithLabelValues(kind).Inc()
	s.publish(next)
	return next, true
}

// Subscribe registers a new snapshot consumer. The current snapshot, if any,
// is delivered first.
func (s *Store) Subscribe() *Subscription {
	sub := &Subscription{
		ch:    make(chan *models.Tournament, subscriptionBuffer),
		store: s,
	}
	sub.C = sub.ch

	s.mu.Lock()
	s.subMu.Lock()
	s.subs[sub] = struct{}{}
	s.subMu.Unlock()
	if s.state != nil {
		sub.deliver(s.state)
	}
	s.mu.Unlock()

	metrics.Subscribers.Inc()
	return sub
}

func (s *Store) publish(t *models.Tournament) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for sub := range s.subs {
		sub.deliver(t)
	}
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	sub.mu.Lock()
	sub.closed = true
	close(sub.ch)
	sub.mu.Unlock()
	metrics.Subscribers.Dec()
}

// Subscription receives snapshots on C. A consumer that falls behind loses
// intermediate snapshots but always receives the newest one.
type Subscription struct {
	C <-chan *models.Tournament

	ch     chan *models.Tournament
	store  *Store
	mu     sync.Mutex
	closed bool
}

func (sub *Subscription) deliver(t *models.Tournament) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	for {
		select {
		case sub.ch <- t:
			return
		default:
		}
		// Buffer full: drop the oldest pending snapshot and retry.
		select {
		case <-sub.ch:
		default:
		}
	}
}

// Unsubscribe detaches the subscription and closes C.
func (sub *Subscription) Unsubscribe() {
	sub.store.unsubscribe(sub)
}
