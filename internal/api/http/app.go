package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/legal"
	moods "github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/picker"
	profiles "github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/theme"
)

// AppHandler serves the static catalogue the client screens are built from.
type AppHandler struct{}

func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

type emotionInfo struct {
	Index   int           `json:"index"`
	Emotion moods.Emotion `json:"emotion"`
	Color   string        `json:"color"`
}

type paletteResponse struct {
	Emotions    []emotionInfo           `json:"emotions"`
	AvatarCount int                     `json:"avatar_count"`
	Themes      map[string]theme.Colors `json:"themes"`
}

// Palette lists the emotions in canonical order with their colours, plus the
// two theme colour sets.
func (h *AppHandler) Palette(c *gin.Context) {
	resp := paletteResponse{
		Emotions:    make([]emotionInfo, 0, moods.PaletteSize),
		AvatarCount: profiles.AvatarCount,
		Themes: map[string]theme.Colors{
			theme.Light.Name: theme.Light,
			theme.Dark.Name:  theme.Dark,
		},
	}
	for i, e := range moods.Palette {
		resp.Emotions = append(resp.Emotions, emotionInfo{Index: i, Emotion: e, Color: e.Color()})
	}
	c.JSON(http.StatusOK, resp)
}

// PickerLayout places the emotion icons on a width x height screen.
func (h *AppHandler) PickerLayout(c *gin.Context) {
	width, err := strconv.ParseFloat(c.Query("width"), 64)
	if err != nil || width <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive number"})
		return
	}
	height, err := strconv.ParseFloat(c.DefaultQuery("height", c.Query("width")), 64)
	if err != nil || height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height must be a positive number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"width":  width,
		"height": height,
		"radius": width * picker.RadiusRatio,
		"slots":  picker.Layout(width, height),
	})
}

// LegalDocument returns the privacy policy or the terms of use.
func (h *AppHandler) LegalDocument(c *gin.Context) {
	doc, err := legal.Get(c.Param("doc"))
	if err != nil {
		if errors.Is(err, legal.ErrUnknownDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found", "available": legal.Names()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Register mounts the public catalogue routes.
func (h *AppHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/palette", h.Palette)
	rg.GET("/picker/layout", h.PickerLayout)
	rg.GET("/legal/:doc", h.LegalDocument)
}
