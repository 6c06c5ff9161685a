package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/logging"
	profiledomain "github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/realtime"
)

// Provider is the external account store.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (domain.Credentials, error)
	SignIn(ctx context.Context, email, password string) (domain.Credentials, error)
	SendPasswordReset(ctx context.Context, email string) error
	DeleteAccount(ctx context.Context, uid string) error
	Exists(ctx context.Context, uid string) (bool, error)
}

// Profiles is the slice of the profile store the account flows touch.
type Profiles interface {
	Get(ctx context.Context, uid string) (*profiledomain.Profile, error)
	Create(ctx context.Context, p *profiledomain.Profile) error
	Delete(ctx context.Context, uid string) error
	ListUIDs(ctx context.Context) ([]string, error)
}

// Moods is the slice of the mood store the account flows touch.
type Moods interface {
	DeleteAll(ctx context.Context, uid string) error
}

// Publisher is the write side of the realtime broker.
type Publisher interface {
	Publish(ctx context.Context, ev realtime.Event) error
}

type AuthService struct {
	provider Provider
	profiles Profiles
	moods    Moods
	events   Publisher
	now      func() time.Time
}

func NewAuthService(provider Provider, profiles Profiles, moods Moods, events Publisher) *AuthService {
	return &AuthService{
		provider: provider,
		profiles: profiles,
		moods:    moods,
		events:   events,
		now:      time.Now,
	}
}

type SignUpRequest struct {
	Email         string
	Password      string
	AcceptedTerms bool
}

// SignUp creates the account and its empty profile. The new user always goes
// to the name and avatar setup next.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*domain.Session, error) {
	email, err := validateCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if !req.AcceptedTerms {
		return nil, domain.ErrTermsNotAccepted
	}

	creds, err := s.provider.CreateAccount(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	stub := &profiledomain.Profile{UID: creds.UID, Email: email}
	if err := s.profiles.Create(ctx, stub); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &domain.Session{Credentials: creds, Next: domain.NextSetName}, nil
}

// SignIn authenticates and decides where the client goes next: home when
// name and avatar are both set, otherwise setup.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	creds, err := s.provider.SignIn(ctx, email, password)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Unknown accounts read the same as a wrong password.
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	next := domain.NextSetName
	p, err := s.profiles.Get(ctx, creds.UID)
	switch {
	case err == nil && p.SetupComplete():
		next = domain.NextHome
	case err != nil && !errors.Is(err, profiledomain.ErrProfileNotFound):
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &domain.Session{Credentials: creds, Next: next}, nil
}

// ResetPassword asks the provider to e-mail a reset link.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	return s.provider.SendPasswordReset(ctx, email)
}

// Me describes the caller. The profile is nil when none is stored yet.
type Me struct {
	domain.Identity
	Profile *profiledomain.Profile `json:"profile,omitempty"`
	Next    string                 `json:"next"`
}

func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*Me, error) {
	me := &Me{Identity: id, Next: domain.NextSetName}

	p, err := s.profiles.Get(ctx, id.UID)
	if err != nil && !errors.Is(err, profiledomain.ErrProfileNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err == nil {
		me.Profile = p
		if p.SetupComplete() {
			me.Next = domain.NextHome
		}
	}
	return me, nil
}

// DeleteAccount removes the account, then the profile and every mood. The
// caller must have signed in recently. Leftover data from a failure after
// the account is gone is removed by SweepOrphans.
func (s *AuthService) DeleteAccount(ctx context.Context, id domain.Identity) error {
	if !id.RecentLogin(s.now()) {
		return domain.ErrRequiresRecentLogin
	}

	if err := s.provider.DeleteAccount(ctx, id.UID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if err := s.deleteData(ctx, id.UID); err != nil {
		return err
	}

	if s.events != nil {
		ev := realtime.Event{Type: realtime.EventAccountDeleted, UserID: id.UID, At: s.now().UTC()}
		if err := s.events.Publish(ctx, ev); err != nil {
			logging.FromContext(ctx).Warn("publish event failed", "type", ev.Type, "error", err)
		}
	}
	return nil
}

func (s *AuthService) deleteData(ctx context.Context, uid string) error {
	if err := s.moods.DeleteAll(ctx, uid); err != nil {
		return fmt.Errorf("delete moods: %w", err)
	}
	if err := s.profiles.Delete(ctx, uid); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// SweepOrphans deletes stored data of users no longer known to the provider
// and returns how many were removed. Lookup failures skip the user.
func (s *AuthService) SweepOrphans(ctx context.Context) (int, error) {
	uids, err := s.profiles.ListUIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	log := logging.FromContext(ctx)
	removed := 0
	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		exists, err := s.provider.Exists(ctx, uid)
		if err != nil {
			log.Warn("sweep: lookup failed", "uid", uid, "error", err)
			continue
		}
		if exists {
			continue
		}

		if err := s.deleteData(ctx, uid); err != nil {
			log.Error("sweep: delete failed", "uid", uid, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

func validateCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.ErrEmailRequired
	}
	if password == "" {
		return "", domain.ErrPasswordRequired
	}
	return email, nil
}
