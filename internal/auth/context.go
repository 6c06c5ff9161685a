package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/auth/domain"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxIdentity    = "identity"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// This is set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserIdentity returns the verified caller set by the auth middleware.
func UserIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
