package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the routes reachable without a token.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
	rg.POST("/password-reset", h.PasswordReset)
}

// RegisterPrivate mounts the routes behind the auth middleware.
func (h *Handler) RegisterPrivate(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.DELETE("/account", h.DeleteAccount)
}
