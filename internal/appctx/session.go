package appctx

import (
	"errors"
	"fmt"

	"github.com/feelio/feelio-backend/internal/appctx/kv"
)

// ErrSignedOut is returned when no session is cached.
var ErrSignedOut = errors.New("not signed in")

// Session is the signed-in user as remembered on this device.
type Session struct {
	UserID  string
	IDToken string
}

// SessionCache remembers the last signed-in user between runs.
type SessionCache struct {
	store *kv.Store
}

func NewSessionCache(store *kv.Store) *SessionCache {
	return &SessionCache{store: store}
}

func (s *SessionCache) Save(sess Session) error {
	if sess.UserID == "" || sess.IDToken == "" {
		return errors.New("session needs a user id and a token")
	}
	if err := s.store.Set(KeyUserID, []byte(sess.UserID)); err != nil {
		return fmt.Errorf("write %s: %w", KeyUserID, err)
	}
	if err := s.store.Set(KeyIDToken, []byte(sess.IDToken)); err != nil {
		return fmt.Errorf("write %s: %w", KeyIDToken, err)
	}
	return nil
}

// Load returns the cached session or ErrSignedOut.
func (s *SessionCache) Load() (Session, error) {
	uid, ok, err := s.store.Get(KeyUserID)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrSignedOut
	}
	tok, ok, err := s.store.Get(KeyIDToken)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrSignedOut
	}
	return Session{UserID: string(uid), IDToken: string(tok)}, nil
}

// Clear forgets the session. The theme flag is kept.
func (s *SessionCache) Clear() error {
	if err := s.store.Delete(KeyIDToken); err != nil {
		return err
	}
	return s.store.Delete(KeyUserID)
}
