package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/cafe-feedback/internal/domain"
)

// FeedbackStore owns the stored representation of the feedback
// collection. The collection lives under one fixed key and is always
// read and replaced as a whole, never row by row.
type FeedbackStore interface {
	// Load returns the stored collection. An absent key or a document
	// that fails to parse yields an empty collection, never an error.
	Load(ctx context.Context) []domain.FeedbackRecord
	// Save overwrites the stored collection. The replacement is atomic:
	// a failed Save leaves the previously stored data intact.
	Save(ctx context.Context, records []domain.FeedbackRecord) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

type memoryStore struct {
	mu      sync.RWMutex
	records []domain.FeedbackRecord
}

// NewMemoryStore returns a store holding the collection in process
// memory only. Used in tests and when no backend is configured.
func NewMemoryStore() FeedbackStore {
	return &memoryStore{}
}

func (s *memoryStore) Load(_ context.Context) []domain.FeedbackRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FeedbackRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *memoryStore) Save(_ context.Context, records []domain.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]domain.FeedbackRecord, len(records))
	copy(s.records, records)
	return nil
}

func (s *memoryStore) Ping(_ context.Context) error {
	return nil
}
