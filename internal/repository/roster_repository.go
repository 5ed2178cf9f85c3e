package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/spec-kit/cafe-feedback/internal/domain"
)

// RosterRepository holds the in-memory roster of rateable staff.
// Members are seeded at startup and appended by import; nothing is
// ever removed in-session.
type RosterRepository interface {
	List(ctx context.Context) []domain.StaffMember
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	Append(ctx context.Context, member domain.StaffMember) error
	Exists(ctx context.Context, id string) bool
}

type rosterRepository struct {
	mu      sync.RWMutex
	members []domain.StaffMember
	byID    map[string]int
}

// NewRosterRepository instantiates the repository with the given seed
// members.
func NewRosterRepository(seed []domain.StaffMember) RosterRepository {
	r := &rosterRepository{byID: make(map[string]int, len(seed))}
	for _, m := range seed {
		if _, dup := r.byID[m.ID]; dup {
			continue
		}
		r.byID[m.ID] = len(r.members)
		r.members = append(r.members, m)
	}
	return r
}

func (r *rosterRepository) List(_ context.Context) []domain.StaffMember {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StaffMember, len(r.members))
	copy(out, r.members)
	return out
}

func (r *rosterRepository) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("staff member %q not on roster", id)
	}
	member := r.members[idx]
	return &member, nil
}

func (r *rosterRepository) Append(_ context.Context, member domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[member.ID]; dup {
		return fmt.Errorf("staff id %q already on roster", member.ID)
	}
	r.byID[member.ID] = len(r.members)
	r.members = append(r.members, member)
	return nil
}

func (r *rosterRepository) Exists(_ context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
