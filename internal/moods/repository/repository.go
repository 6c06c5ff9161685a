package repository

import (
	"context"
	"time"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// Repository persists one mood label per user per calendar day.
type Repository interface {
	// Set creates or overwrites the mood of rec.Date.
	Set(ctx context.Context, rec domain.Record) error
	// Get returns domain.ErrMoodNotFound when the day has no mood.
	Get(ctx context.Context, uid string, date domain.Date) (domain.Record, error)
	Month(ctx context.Context, uid string, year int, month time.Month) (domain.MonthMoods, error)
	Year(ctx context.Context, uid string, year int) (domain.YearMoods, error)
	DeleteAll(ctx context.Context, uid string) error
}
