// Package appctx holds the client state shared by every command: the theme
// flag and the cached session. Both live in the on-device key/value store.
package appctx

import (
	"github.com/feelio/feelio-backend/internal/appctx/kv"
)

// Persisted keys.
const (
	KeyDarkMode = "isDarkMode"
	KeyUserID   = "userId"
	KeyIDToken  = "idToken"
)

// Context is handed to every command instead of package-level state.
type Context struct {
	Theme   *ThemeStore
	Session *SessionCache
}

// Open loads the client state kept under dir.
func Open(dir string) (*Context, error) {
	store := kv.Open(dir)

	th, err := NewThemeStore(store)
	if err != nil {
		return nil, err
	}
	return &Context{
		Theme:   th,
		Session: NewSessionCache(store),
	}, nil
}
