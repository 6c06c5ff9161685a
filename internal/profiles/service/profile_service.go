package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/profiles/repository"
	"github.com/feelio/feelio-backend/internal/realtime"
)

// Publisher is the write side of the realtime broker.
type Publisher interface {
	Publish(ctx context.Context, ev realtime.Event) error
}

type ProfileService struct {
	repo   repository.Repository
	events Publisher
}

func NewProfileService(repo repository.Repository, events Publisher) *ProfileService {
	return &ProfileService{repo: repo, events: events}
}

func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.repo.Get(ctx, uid)
}

// Setup stores the display name and avatar chosen right after sign-up. Both
// are required. A missing profile record is recreated from email.
func (s *ProfileService) Setup(ctx context.Context, uid, email, name string, avatarID int) (*domain.Profile, error) {
	upd, err := domain.Update{Name: &name, AvatarID: &avatarID}.Normalize()
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, uid); errors.Is(err, domain.ErrProfileNotFound) {
		if err := s.repo.Create(ctx, &domain.Profile{UID: uid, Email: email}); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	return s.update(ctx, uid, upd)
}

// Edit changes the name, the avatar or both.
func (s *ProfileService) Edit(ctx context.Context, uid string, upd domain.Update) (*domain.Profile, error) {
	upd, err := upd.Normalize()
	if err != nil {
		return nil, err
	}
	return s.update(ctx, uid, upd)
}

func (s *ProfileService) update(ctx context.Context, uid string, upd domain.Update) (*domain.Profile, error) {
	p, err := s.repo.Update(ctx, uid, upd)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if s.events != nil {
		ev := realtime.Event{Type: realtime.EventProfile, UserID: uid, At: time.Now().UTC()}
		if err := s.events.Publish(ctx, ev); err != nil {
			logging.FromContext(ctx).Warn("publish event failed", "type", ev.Type, "error", err)
		}
	}
	return p, nil
}
