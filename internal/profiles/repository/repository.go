package repository

import (
	"context"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

// Repository persists user profiles.
type Repository interface {
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	// Create writes the sign-up stub (uid, email, created_at), replacing any
	// previous record.
	Create(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, uid string, upd domain.Update) (*domain.Profile, error)
	Delete(ctx context.Context, uid string) error
	ListUIDs(ctx context.Context) ([]string, error)
}
