package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/feelio/feelio-backend/internal/auth/domain"
)

type fakeAdmin struct {
	createErr error
	deleteErr error
	getErr    error
	created   []string
	deleted   []string
}

func (f *fakeAdmin) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, "x")
	return &auth.UserRecord{}, nil
}

func (f *fakeAdmin) DeleteUser(_ context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeAdmin) GetUser(_ context.Context, _ string) (*auth.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &auth.UserRecord{}, nil
}

func writeToolkitError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 400, "message": msg},
	})
}

func newProvider(t *testing.T, admin AdminClient, h http.HandlerFunc) *Firebase {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := New(context.Background(), admin,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return p
}

func TestSignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newProvider(t, &fakeAdmin{}, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "verifyPassword")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"localId":      "uid-1",
				"email":        "a@b.co",
				"idToken":      "tok",
				"refreshToken": "ref",
				"expiresIn":    "3600",
			})
		})

		creds, err := p.SignIn(context.Background(), "a@b.co", "secret")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", creds.UID)
		assert.Equal(t, "tok", creds.IDToken)
		assert.EqualValues(t, 3600, creds.ExpiresIn)
	})

	tests := []struct {
		code string
		want error
	}{
		{"INVALID_PASSWORD", domain.ErrInvalidCredentials},
		{"INVALID_LOGIN_CREDENTIALS", domain.ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := newProvider(t, &fakeAdmin{}, func(w http.ResponseWriter, r *http.Request) {
				writeToolkitError(w, tt.code)
			})
			_, err := p.SignIn(context.Background(), "a@b.co", "bad")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unmapped code keeps provider message", func(t *testing.T) {
		msg := "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled"
		p := newProvider(t, &fakeAdmin{}, func(w http.ResponseWriter, r *http.Request) {
			writeToolkitError(w, msg)
		})
		_, err := p.SignIn(context.Background(), "a@b.co", "bad")

		var pe *domain.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, msg, pe.Message)
	})
}

func TestSendPasswordReset(t *testing.T) {
	var body map[string]any
	p := newProvider(t, &fakeAdmin{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "getOobConfirmationCode")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"a@b.co"}`))
	})

	require.NoError(t, p.SendPasswordReset(context.Background(), "a@b.co"))
	assert.Equal(t, "PASSWORD_RESET", body["requestType"])
	assert.Equal(t, "a@b.co", body["email"])
}

func TestCreateAccount_ProviderFailure(t *testing.T) {
	admin := &fakeAdmin{createErr: errors.New("backend unavailable")}
	p := newProvider(t, admin, func(w http.ResponseWriter, r *http.Request) {
		t.Error("sign-in must not run after a failed create")
	})

	_, err := p.CreateAccount(context.Background(), "a@b.co", "secret")
	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "backend unavailable", pe.Message)
}

func TestExistsAndDelete(t *testing.T) {
	admin := &fakeAdmin{}
	p := newProvider(t, admin, func(w http.ResponseWriter, r *http.Request) {})

	ok, err := p.Exists(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.DeleteAccount(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, admin.deleted)

	admin.getErr = errors.New("transport")
	_, err = p.Exists(context.Background(), "u1")
	assert.Error(t, err)
}
