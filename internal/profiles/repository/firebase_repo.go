package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"firebase.google.com/go/v4/db"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

// record is the document stored under users/{uid}.
type record struct {
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	AvatarID  *int    `json:"avatarId,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// node is the part of *db.Ref this repository uses.
type node interface {
	Get(ctx context.Context, v interface{}) error
	GetShallow(ctx context.Context, v interface{}) error
	Update(ctx context.Context, v map[string]interface{}) error
	Delete(ctx context.Context) error
}

// FirebaseRepository stores profiles in the Realtime Database under users/{uid}.
// The moods subtree lives below the same node, so profile writes are merges
// that leave it alone. Only Delete removes the whole node.
type FirebaseRepository struct {
	ref func(path string) node
	now func() time.Time
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{
		ref: func(path string) node { return client.NewRef(path) },
		now: time.Now,
	}
}

func userPath(uid string) string {
	return "users/" + uid
}

func (r *FirebaseRepository) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	var rec *record
	if err := r.ref(userPath(uid)).Get(ctx, &rec); err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if rec == nil || rec.Email == "" && rec.CreatedAt == "" {
		return nil, domain.ErrProfileNotFound
	}
	return rec.toProfile(uid), nil
}

func (r *FirebaseRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now().UTC()
	}
	p.UpdatedAt = p.CreatedAt

	// null clears any name or avatar left from an earlier profile
	err := r.ref(userPath(p.UID)).Update(ctx, map[string]interface{}{
		"email":     p.Email,
		"name":      nil,
		"avatarId":  nil,
		"createdAt": p.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt": p.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *FirebaseRepository) Update(ctx context.Context, uid string, upd domain.Update) (*domain.Profile, error) {
	if _, err := r.Get(ctx, uid); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"updatedAt": r.now().UTC().Format(time.RFC3339Nano),
	}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.AvatarID != nil {
		fields["avatarId"] = *upd.AvatarID
	}
	if err := r.ref(userPath(uid)).Update(ctx, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return r.Get(ctx, uid)
}

func (r *FirebaseRepository) Delete(ctx context.Context, uid string) error {
	if err := r.ref(userPath(uid)).Delete(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *FirebaseRepository) ListUIDs(ctx context.Context) ([]string, error) {
	var shallow map[string]interface{}
	if err := r.ref("users").GetShallow(ctx, &shallow); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	uids := make([]string, 0, len(shallow))
	for uid := range shallow {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids, nil
}

func (rec *record) toProfile(uid string) *domain.Profile {
	p := &domain.Profile{
		UID:      uid,
		Email:    rec.Email,
		Name:     rec.Name,
		AvatarID: rec.AvatarID,
	}
	p.CreatedAt = parseTime(rec.CreatedAt)
	p.UpdatedAt = parseTime(rec.UpdatedAt)
	return p
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
