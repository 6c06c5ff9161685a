package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/profiles/service"
)

type Handler struct {
	profileService *service.ProfileService
}

func New(profileService *service.ProfileService) *Handler {
	return &Handler{profileService: profileService}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.SetupProfile)
	rg.PATCH("/profile", h.UpdateProfile)
}

type setupRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarIndex *int    `json:"avatar_index"`
}

type updateRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarIndex *int    `json:"avatar_index,omitempty"`
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	p, err := h.profileService.Get(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "setup_complete": p.SetupComplete()})
}

// SetupProfile stores the name and avatar chosen after sign-up.
func (h *Handler) SetupProfile(c *gin.Context) {
	id, ok := auth.UserIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DisplayName == nil {
		writeError(c, domain.ErrNameRequired)
		return
	}
	avatar := 0
	if req.AvatarIndex != nil {
		avatar = *req.AvatarIndex
	}

	p, err := h.profileService.Setup(c.Request.Context(), id.UID, id.Email, *req.DisplayName, avatar)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "setup_complete": p.SetupComplete()})
}

// UpdateProfile changes the name and/or avatar.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.profileService.Edit(c.Request.Context(), uid, domain.Update{
		Name:     req.DisplayName,
		AvatarID: req.AvatarIndex,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "setup_complete": p.SetupComplete()})
}

var messages = map[error]string{
	domain.ErrNameRequired:  "Please enter your name before proceeding.",
	domain.ErrNameTooLong:   "Your name is too long.",
	domain.ErrInvalidAvatar: "Please choose one of the available avatars.",
	domain.ErrEmptyUpdate:   "Nothing to update.",
}

func writeError(c *gin.Context, err error) {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
	}
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	logging.FromContext(c.Request.Context()).Error("profile request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
}
