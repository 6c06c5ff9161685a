// Package provider implements account operations on Firebase Auth: the admin
// SDK for account management and the Identity Toolkit REST API for the
// password flows the admin SDK does not cover.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/feelio/feelio-backend/internal/auth/domain"
)

// AdminClient is the subset of *auth.Client used here.
type AdminClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

type Firebase struct {
	admin   AdminClient
	toolkit *identitytoolkit.Service
}

// New builds the provider. opts are passed to the Identity Toolkit client and
// must carry the web API key.
func New(ctx context.Context, admin AdminClient, opts ...option.ClientOption) (*Firebase, error) {
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity toolkit client: %w", err)
	}
	return &Firebase{admin: admin, toolkit: svc}, nil
}

// CreateAccount registers the account and signs it in.
func (f *Firebase) CreateAccount(ctx context.Context, email, password string) (domain.Credentials, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if _, err := f.admin.CreateUser(ctx, params); err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return domain.Credentials{}, domain.ErrEmailInUse
		}
		return domain.Credentials{}, translate(err)
	}
	return f.SignIn(ctx, email, password)
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (domain.Credentials, error) {
	resp, err := f.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return domain.Credentials{}, translate(err)
	}
	return domain.Credentials{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	_, err := f.toolkit.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return translate(err)
	}
	return nil
}

func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.admin.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return domain.ErrUserNotFound
		}
		return translate(err)
	}
	return nil
}

// Exists reports whether the account is still registered.
func (f *Firebase) Exists(ctx context.Context, uid string) (bool, error) {
	if _, err := f.admin.GetUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get user: %w", err)
	}
	return true, nil
}

// translate maps Identity Toolkit error codes onto domain errors.
func translate(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &domain.ProviderError{Message: err.Error(), Err: err}
	}

	// Codes may carry a detail suffix, e.g. "WEAK_PASSWORD : Password should be...".
	code := strings.TrimSpace(strings.SplitN(gerr.Message, ":", 2)[0])
	switch code {
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL":
		return domain.ErrInvalidCredentials
	case "EMAIL_NOT_FOUND", "USER_NOT_FOUND":
		return domain.ErrUserNotFound
	case "EMAIL_EXISTS":
		return domain.ErrEmailInUse
	case "CREDENTIAL_TOO_OLD_LOGIN_AGAIN":
		return domain.ErrRequiresRecentLogin
	}
	return &domain.ProviderError{Message: gerr.Message, Err: err}
}
