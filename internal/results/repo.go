package results

import (
	"context"
	"slices"
	"sync"
)

// Repo is the append-only persistence collaborator for records.
type Repo interface {
	// Append stores a new record. Records are never updated.
	Append(ctx context.Context, rec *Record) error

	// ListByOwner returns the owner's records, newest first.
	ListByOwner(ctx context.Context, owner string) ([]*Record, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
}

// MemoryRepo is an in-process Repo used by tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []*Record

	// FailAppend, if set, is returned by Append instead of storing.
	FailAppend error
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Append(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAppend != nil {
		return m.FailAppend
	}
	for _, r := range m.records {
		if r.ID == rec.ID {
			return nil
		}
	}
	cp := *rec
	cp.Answers = rec.Answers.Clone()
	m.records = append(m.records, &cp)
	return nil
}

func (m *MemoryRepo) ListByOwner(_ context.Context, owner string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Record
	// Later appends first, so equal timestamps keep newest-first order.
	for _, r := range slices.Backward(m.records) {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b *Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}
