// Package history persists round outcomes per user. Stores are optional:
// the game runs the same without one.
package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Outcome is one answered round.
type Outcome struct {
	UserID     string
	RegionID   string
	RegionName string
	Correct    bool
	Hint       string
	CreatedAt  time.Time
}

// Store is an append-only per-user outcome log.
type Store interface {
	Append(ctx context.Context, o Outcome) error
	// List returns up to limit outcomes for userID, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]Outcome, error)
	Close() error
}

// MemoryStore keeps outcomes in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string][]Outcome
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]Outcome), now: time.Now}
}

func (m *MemoryStore) Append(_ context.Context, o Outcome) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = m.now()
	}
	m.mu.Lock()
	m.rows[o.UserID] = append(m.rows[o.UserID], o)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, userID string, limit int) ([]Outcome, error) {
	m.mu.Lock()
	src := m.rows[userID]
	out := make([]Outcome, len(src))
	copy(out, src)
	m.mu.Unlock()

	// reverse insertion order first so equal timestamps stay newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
