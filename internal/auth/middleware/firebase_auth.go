package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	authctx "github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/auth/domain"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and stores the caller's
// identity in the Gin context.
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		id := domain.Identity{UID: decoded.UID}
		if email, ok := decoded.Claims["email"].(string); ok {
			id.Email = email
		}
		if decoded.AuthTime > 0 {
			id.AuthTime = time.Unix(decoded.AuthTime, 0).UTC()
		}

		c.Set(authctx.CtxFirebaseUID, decoded.UID)
		c.Set(authctx.CtxIdentity, id)
		c.Next()
	}
}

// extractToken reads a Bearer token from the Authorization header, or the
// access_token query parameter for EventSource clients that cannot set
// headers.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return strings.TrimSpace(c.Query("access_token"))
}
