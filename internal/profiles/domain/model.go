package domain

import (
	"errors"
	"strings"
	"time"
)

// AvatarCount is the number of selectable avatars; valid indexes are 0..AvatarCount-1.
const AvatarCount = 2

// MaxNameLength bounds the display name in runes.
const MaxNameLength = 40

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrInvalidAvatar   = errors.New("invalid avatar")
	ErrEmptyUpdate     = errors.New("nothing to update")
)

// Profile is the per-user record. Name and AvatarID stay nil until the
// one-time setup completes.
type Profile struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Name      *string   `json:"display_name,omitempty"`
	AvatarID  *int      `json:"avatar_index,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// SetupComplete reports whether both name and avatar are chosen.
func (p *Profile) SetupComplete() bool {
	return p != nil && p.Name != nil && p.AvatarID != nil
}

// Update is a partial profile change; nil fields are left untouched.
type Update struct {
	Name     *string
	AvatarID *int
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.AvatarID == nil
}

// Normalize trims the name and validates both fields.
func (u Update) Normalize() (Update, error) {
	if u.Empty() {
		return u, ErrEmptyUpdate
	}
	if u.Name != nil {
		name, err := NormalizeName(*u.Name)
		if err != nil {
			return u, err
		}
		u.Name = &name
	}
	if u.AvatarID != nil && !ValidAvatar(*u.AvatarID) {
		return u, ErrInvalidAvatar
	}
	return u, nil
}

// NormalizeName trims surrounding space and checks the length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len([]rune(name)) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func ValidAvatar(i int) bool {
	return i >= 0 && i < AvatarCount
}
