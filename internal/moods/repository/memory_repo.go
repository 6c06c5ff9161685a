package repository

import (
	"context"
	"sync"
	"time"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

type dayKey struct {
	uid  string
	date domain.Date
}

// MemoryRepository keeps moods in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	moods map[dayKey]domain.Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{moods: make(map[dayKey]domain.Record)}
}

func (r *MemoryRepository) Set(_ context.Context, rec domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.moods[dayKey{rec.UserID, rec.Date}] = rec
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, uid string, date domain.Date) (domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.moods[dayKey{uid, date}]
	if !ok {
		return domain.Record{}, domain.ErrMoodNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) Month(_ context.Context, uid string, year int, month time.Month) (domain.MonthMoods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := domain.MonthMoods{}
	for k, rec := range r.moods {
		if k.uid == uid && k.date.Year == year && k.date.Month == month {
			out[k.date.Day] = string(rec.Emotion)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Year(_ context.Context, uid string, year int) (domain.YearMoods, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := domain.YearMoods{}
	for k, rec := range r.moods {
		if k.uid != uid || k.date.Year != year {
			continue
		}
		if out[k.date.Month] == nil {
			out[k.date.Month] = domain.MonthMoods{}
		}
		out[k.date.Month][k.date.Day] = string(rec.Emotion)
	}
	return out, nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.moods {
		if k.uid == uid {
			delete(r.moods, k)
		}
	}
	return nil
}
