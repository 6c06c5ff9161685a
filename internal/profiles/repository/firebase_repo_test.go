package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

// memTree keeps a JSON tree with Realtime Database write semantics:
// Update merges the given children and null removes a child.
type memTree struct {
	root map[string]interface{}
}

type memNode struct {
	tree *memTree
	path []string
}

func (t *memTree) ref(path string) node {
	return &memNode{tree: t, path: strings.Split(path, "/")}
}

func (t *memTree) lookup(path []string) interface{} {
	var cur interface{} = t.root
	for _, seg := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

func (t *memTree) put(path []string, v interface{}) {
	cur := t.root
	for _, seg := range path[:len(path)-1] {
		next, ok := cur[seg].(map[string]interface{})
		if !ok {
			if v == nil {
				return
			}
			next = map[string]interface{}{}
			cur[seg] = next
		}
		cur = next
	}
	last := path[len(path)-1]
	if v == nil {
		delete(cur, last)
		return
	}
	cur[last] = v
}

func generic(v interface{}) interface{} {
	b, _ := json.Marshal(v)
	var out interface{}
	_ = json.Unmarshal(b, &out)
	return out
}

func decodeInto(v, dst interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func (n *memNode) Get(_ context.Context, v interface{}) error {
	return decodeInto(n.tree.lookup(n.path), v)
}

func (n *memNode) GetShallow(_ context.Context, v interface{}) error {
	m, _ := n.tree.lookup(n.path).(map[string]interface{})
	keys := map[string]bool{}
	for k := range m {
		keys[k] = true
	}
	return decodeInto(keys, v)
}

func (n *memNode) Update(_ context.Context, v map[string]interface{}) error {
	for k, val := range v {
		path := append(append([]string{}, n.path...), strings.Split(k, "/")...)
		n.tree.put(path, generic(val))
	}
	return nil
}

func (n *memNode) Delete(_ context.Context) error {
	n.tree.put(n.path, nil)
	return nil
}

func newFirebaseFixture() (*FirebaseRepository, *memTree) {
	tree := &memTree{root: map[string]interface{}{}}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &FirebaseRepository{ref: tree.ref, now: func() time.Time { return now }}
	return repo, tree
}

func TestFirebaseRepository_CreateKeepsMoods(t *testing.T) {
	repo, tree := newFirebaseFixture()
	ctx := context.Background()

	// moods recorded before the profile stub was written
	tree.put(strings.Split("users/u1/moods/2024/03/10", "/"), "Happy")

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u1", Email: "a@b.co"}))

	assert.Equal(t, "Happy", tree.lookup(strings.Split("users/u1/moods/2024/03/10", "/")))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", p.Email)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.False(t, p.SetupComplete())
}

func TestFirebaseRepository_CreateResetsLeftoverProfile(t *testing.T) {
	repo, tree := newFirebaseFixture()
	ctx := context.Background()

	tree.put([]string{"users", "u1"}, generic(map[string]interface{}{
		"email":     "old@b.co",
		"name":      "Old",
		"avatarId":  3,
		"createdAt": "2023-01-01T00:00:00Z",
	}))

	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u1", Email: "a@b.co"}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", p.Email)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.AvatarID)
}

func TestFirebaseRepository_Lifecycle(t *testing.T) {
	repo, tree := newFirebaseFixture()
	ctx := context.Background()

	_, err := repo.Update(ctx, "u1", domain.Update{})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u1", Email: "a@b.co"}))
	require.NoError(t, repo.Create(ctx, &domain.Profile{UID: "u2", Email: "c@d.co"}))
	tree.put(strings.Split("users/u1/moods/2024/03/10", "/"), "Calm")

	name, avatar := "Ada", 2
	p, err := repo.Update(ctx, "u1", domain.Update{Name: &name, AvatarID: &avatar})
	require.NoError(t, err)
	assert.True(t, p.SetupComplete())
	assert.Equal(t, "Calm", tree.lookup(strings.Split("users/u1/moods/2024/03/10", "/")))

	uids, err := repo.ListUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, uids)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.Nil(t, tree.lookup([]string{"users", "u1"}))

	_, err = repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
