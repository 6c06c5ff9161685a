package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/auth/service"
	moodsrepo "github.com/feelio/feelio-backend/internal/moods/repository"
	profilesrepo "github.com/feelio/feelio-backend/internal/profiles/repository"
)

type stubProvider struct {
	signInErr error
	resetErr  error
}

func (p *stubProvider) CreateAccount(_ context.Context, email, _ string) (domain.Credentials, error) {
	if email == "taken@b.co" {
		return domain.Credentials{}, domain.ErrEmailInUse
	}
	return domain.Credentials{UID: "u1", Email: email, IDToken: "tok"}, nil
}

func (p *stubProvider) SignIn(_ context.Context, email, _ string) (domain.Credentials, error) {
	if p.signInErr != nil {
		return domain.Credentials{}, p.signInErr
	}
	return domain.Credentials{UID: "u1", Email: email, IDToken: "tok"}, nil
}

func (p *stubProvider) SendPasswordReset(context.Context, string) error { return p.resetErr }

func (p *stubProvider) DeleteAccount(context.Context, string) error { return nil }

func (p *stubProvider) Exists(context.Context, string) (bool, error) { return true, nil }

func setupRouter(p *stubProvider, id *domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAuthService(p, profilesrepo.NewMemoryRepository(), moodsrepo.NewMemoryRepository(), nil)
	h := New(svc)

	r := gin.New()
	g := r.Group("/v1/auth")
	h.RegisterPublic(g)

	private := g.Group("")
	private.Use(func(c *gin.Context) {
		if id != nil {
			c.Set(auth.CtxIdentity, *id)
		}
		c.Next()
	})
	h.RegisterPrivate(private)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestSignUp(t *testing.T) {
	r := setupRouter(&stubProvider{}, nil)

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"no email", `{"password":"pw","accepted_terms":true}`, 400, "Please enter your email address"},
		{"no password", `{"email":"a@b.co","accepted_terms":true}`, 400, "Please enter your password"},
		{"no terms", `{"email":"a@b.co","password":"pw"}`, 400, "Please accept the terms of use"},
		{"taken", `{"email":"taken@b.co","password":"pw","accepted_terms":true}`, 409, "This email address is already in use"},
		{"bad json", `{`, 400, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/v1/auth/sign-up", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.msg, errorOf(t, w))
		})
	}

	t.Run("created", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/auth/sign-up", `{"email":"a@b.co","password":"pw","accepted_terms":true}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Session domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "u1", resp.Session.UID)
		assert.Equal(t, domain.NextSetName, resp.Session.Next)
	})
}

func TestSignIn_Errors(t *testing.T) {
	p := &stubProvider{signInErr: domain.ErrInvalidCredentials}
	r := setupRouter(p, nil)

	w := do(r, http.MethodPost, "/v1/auth/sign-in", `{"email":"a@b.co","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", errorOf(t, w))

	p.signInErr = domain.ErrUserNotFound
	w = do(r, http.MethodPost, "/v1/auth/sign-in", `{"email":"nobody@b.co","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", errorOf(t, w))

	p.signInErr = &domain.ProviderError{Message: "TOO_MANY_ATTEMPTS_TRY_LATER"}
	w = do(r, http.MethodPost, "/v1/auth/sign-in", `{"email":"a@b.co","password":"x"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "TOO_MANY_ATTEMPTS_TRY_LATER", errorOf(t, w))
}

func TestPasswordReset(t *testing.T) {
	p := &stubProvider{}
	r := setupRouter(p, nil)

	w := do(r, http.MethodPost, "/v1/auth/password-reset", `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	p.resetErr = domain.ErrUserNotFound
	w = do(r, http.MethodPost, "/v1/auth/password-reset", `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAccount(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		w := do(setupRouter(&stubProvider{}, nil), http.MethodDelete, "/v1/auth/account", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stale login", func(t *testing.T) {
		id := &domain.Identity{UID: "u1", AuthTime: time.Now().Add(-time.Hour)}
		w := do(setupRouter(&stubProvider{}, id), http.MethodDelete, "/v1/auth/account", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		id := &domain.Identity{UID: "u1", AuthTime: time.Now()}
		w := do(setupRouter(&stubProvider{}, id), http.MethodDelete, "/v1/auth/account", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestMe(t *testing.T) {
	id := &domain.Identity{UID: "u1", Email: "a@b.co"}
	w := do(setupRouter(&stubProvider{}, id), http.MethodGet, "/v1/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"next":"set-name"`)
	assert.Contains(t, w.Body.String(), `"uid":"u1"`)
}
