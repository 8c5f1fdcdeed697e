package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sapper/internal/sapper"
)

var ErrNotFound = errors.New("game session not found")

// GameSession is a copy of a hosted game taken under its lock.
type GameSession struct {
	GameSessionId uuid.UUID
	StartedAt     time.Time
	EndedAt       *time.Time
	UpdatedAt     time.Time
	Snapshot      sapper.Snapshot
}

type entry struct {
	mu        sync.Mutex
	id        uuid.UUID
	startedAt time.Time
	endedAt   *time.Time
	updatedAt time.Time
	game      *sapper.GameSession
	// closed on eviction
	evicted chan struct{}
}

func (e *entry) row() *GameSession {
	return &GameSession{
		GameSessionId: e.id,
		StartedAt:     e.startedAt,
		EndedAt:       e.endedAt,
		UpdatedAt:     e.updatedAt,
		Snapshot:      e.game.Snapshot(),
	}
}

// Repository keeps hosted games in memory. Nothing outlives the process.
type Repository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	now      func() time.Time
}

func New() *Repository {
	return &Repository{
		sessions: make(map[uuid.UUID]*entry),
		now:      time.Now,
	}
}

func (r *Repository) CreateGameSession(game *sapper.GameSession) *GameSession {
	now := r.now().UTC()
	e := &entry{
		id:        uuid.New(),
		startedAt: now,
		updatedAt: now,
		game:      game,
		evicted:   make(chan struct{}),
	}

	r.mu.Lock()
	r.sessions[e.id] = e
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.row()
}

func (r *Repository) fetch(gameSessionId uuid.UUID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[gameSessionId]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *Repository) FetchGameSession(gameSessionId uuid.UUID) (*GameSession, error) {
	e, err := r.fetch(gameSessionId)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.row(), nil
}

// UpdateGameSession runs fn with exclusive access to the game and returns
// the session as fn left it. Every call counts as activity for idle
// eviction; the first one that leaves the game won or lost stamps EndedAt.
// An error from fn is returned as is, after the stamps.
func (r *Repository) UpdateGameSession(
	gameSessionId uuid.UUID, fn func(game *sapper.GameSession) error,
) (*GameSession, error) {
	e, err := r.fetch(gameSessionId)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fnErr := fn(e.game)

	now := r.now().UTC()
	e.updatedAt = now
	if e.endedAt == nil && e.game.Status.Terminal() {
		e.endedAt = &now
	}
	return e.row(), fnErr
}

// Evicted returns a channel closed once the session is dropped for being
// idle.
func (r *Repository) Evicted(gameSessionId uuid.UUID) (<-chan struct{}, error) {
	e, err := r.fetch(gameSessionId)
	if err != nil {
		return nil, err
	}
	return e.evicted, nil
}

// DeleteIdle drops every session untouched since before.
func (r *Repository) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.updatedAt.Before(before)
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			close(e.evicted)
			n++
		}
	}
	return n
}

func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RunJanitor evicts sessions idle for longer than idle every interval until
// ctx is done.
func (r *Repository) RunJanitor(
	ctx context.Context, log logrus.FieldLogger, interval, idle time.Duration,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.DeleteIdle(r.now().Add(-idle)); n > 0 {
				log.WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": r.Count(),
				}).Debug("evicted idle game sessions")
			}
		}
	}
}
