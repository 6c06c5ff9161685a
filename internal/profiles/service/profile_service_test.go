package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/profiles/repository"
	"github.com/feelio/feelio-backend/internal/realtime"
)

func TestSetup(t *testing.T) {
	repo := repository.NewMemoryRepository()
	broker := realtime.NewMemoryBroker()
	s := NewProfileService(repo, broker)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, "u1")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u1", Email: "a@b.co"}))

	p, err := s.Setup(ctx, "u1", "a@b.co", "  Ada  ", 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *p.Name)
	assert.Equal(t, 1, *p.AvatarID)
	assert.True(t, p.SetupComplete())
	assert.Equal(t, realtime.EventProfile, (<-sub.C()).Type)
}

func TestSetup_RecreatesMissingProfile(t *testing.T) {
	s := NewProfileService(repository.NewMemoryRepository(), nil)

	p, err := s.Setup(context.Background(), "u1", "a@b.co", "Ada", 0)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", p.Email)
	assert.True(t, p.SetupComplete())
}

func TestSetup_Validation(t *testing.T) {
	s := NewProfileService(repository.NewMemoryRepository(), nil)
	ctx := context.Background()

	_, err := s.Setup(ctx, "u1", "a@b.co", "   ", 0)
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = s.Setup(ctx, "u1", "a@b.co", strings.Repeat("x", domain.MaxNameLength+1), 0)
	assert.ErrorIs(t, err, domain.ErrNameTooLong)

	_, err = s.Setup(ctx, "u1", "a@b.co", "Ada", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidAvatar)
}

func TestEdit(t *testing.T) {
	repo := repository.NewMemoryRepository()
	s := NewProfileService(repo, nil)
	ctx := context.Background()

	_, err := s.Setup(ctx, "u1", "a@b.co", "Ada", 0)
	require.NoError(t, err)

	avatar := 1
	p, err := s.Edit(ctx, "u1", domain.Update{AvatarID: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *p.Name)
	assert.Equal(t, 1, *p.AvatarID)

	_, err = s.Edit(ctx, "u1", domain.Update{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

	name := "Grace"
	_, err = s.Edit(ctx, "missing", domain.Update{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
