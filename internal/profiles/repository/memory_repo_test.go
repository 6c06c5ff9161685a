package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u1", Email: "a@b.co"}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, p.SetupComplete())
	assert.False(t, p.CreatedAt.IsZero())

	name, avatar := "Ada", 1
	p, err = repo.Update(ctx, "u1", domain.Update{Name: &name, AvatarID: &avatar})
	require.NoError(t, err)
	assert.True(t, p.SetupComplete())

	// returned copies do not alias stored state
	*p.Name = "changed"
	again, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", *again.Name)

	uids, err := repo.ListUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, uids)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.Update(ctx, "u1", domain.Update{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
