package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

// MemoryRepository keeps profiles in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[string]domain.Profile),
		now:      time.Now,
	}
}

func (r *MemoryRepository) Get(_ context.Context, uid string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepository) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
	r.profiles[p.UID] = *clone(*p)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, uid string, upd domain.Update) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if upd.Name != nil {
		name := *upd.Name
		p.Name = &name
	}
	if upd.AvatarID != nil {
		avatar := *upd.AvatarID
		p.AvatarID = &avatar
	}
	p.UpdatedAt = r.now().UTC()
	r.profiles[uid] = p
	return clone(p), nil
}

func (r *MemoryRepository) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, uid)
	return nil
}

func (r *MemoryRepository) ListUIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uids := make([]string, 0, len(r.profiles))
	for uid := range r.profiles {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids, nil
}

func clone(p domain.Profile) *domain.Profile {
	out := p
	if p.Name != nil {
		n := *p.Name
		out.Name = &n
	}
	if p.AvatarID != nil {
		a := *p.AvatarID
		out.AvatarID = &a
	}
	return &out
}
