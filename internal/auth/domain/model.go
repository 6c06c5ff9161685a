package domain

import (
	"errors"
	"time"
)

// Routing hints returned after authentication.
const (
	NextHome    = "home"
	NextSetName = "set-name"
)

// RecentLoginWindow is how old a sign-in may be for sensitive operations.
const RecentLoginWindow = 5 * time.Minute

var (
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrTermsNotAccepted    = errors.New("terms of use not accepted")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailInUse          = errors.New("email already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrRequiresRecentLogin = errors.New("requires recent login")
)

var messages = map[error]string{
	ErrEmailRequired:       "Please enter your email address",
	ErrPasswordRequired:    "Please enter your password",
	ErrTermsNotAccepted:    "Please accept the terms of use",
	ErrInvalidCredentials:  "Incorrect email or password",
	ErrEmailInUse:          "This email address is already in use",
	ErrUserNotFound:        "No account found for this email address",
	ErrRequiresRecentLogin: "Please sign in again before deleting your account",
}

// UserMessage returns the text shown to the user for err. Provider errors
// without a sentinel show the provider's message.
func UserMessage(err error) string {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

// ProviderError carries an auth provider failure that has no sentinel.
// Message is the provider's own text and is shown to the user as is.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }

// Identity is the caller resolved from a verified ID token.
type Identity struct {
	UID      string    `json:"uid"`
	Email    string    `json:"email,omitempty"`
	AuthTime time.Time `json:"auth_time"`
}

// RecentLogin reports whether the identity signed in within the window.
func (i Identity) RecentLogin(now time.Time) bool {
	return !i.AuthTime.IsZero() && now.Sub(i.AuthTime) <= RecentLoginWindow
}

// Credentials is what the provider returns after a password sign-in.
type Credentials struct {
	UID          string `json:"user_id"`
	Email        string `json:"email"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Session is returned to clients after sign-up or sign-in. Next tells the
// client which screen to show.
type Session struct {
	Credentials
	Next string `json:"next"`
}
