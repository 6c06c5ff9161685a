package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/auth/service"
	"github.com/feelio/feelio-backend/internal/logging"
)

// SignUp creates an account and its empty profile.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.authService.SignUp(c.Request.Context(), service.SignUpRequest{
		Email:         req.Email,
		Password:      req.Password,
		AcceptedTerms: req.AcceptedTerms,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": sess})
}

// SignIn authenticates with e-mail and password.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// PasswordReset sends a reset e-mail.
func (h *Handler) PasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// Me returns the caller's identity, profile and routing hint.
func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.UserIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	me, err := h.authService.Me(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": me})
}

// DeleteAccount removes the caller's account and all of its data.
func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := auth.UserIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var pe *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrPasswordRequired),
		errors.Is(err, domain.ErrTermsNotAccepted):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrRequiresRecentLogin):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailInUse):
		status = http.StatusConflict
	case errors.As(err, &pe):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("auth request failed", "error", err)
		c.JSON(status, gin.H{"error": "something went wrong, please try again"})
		return
	}
	c.JSON(status, gin.H{"error": domain.UserMessage(err)})
}
