package http

import (
	"time"

	"github.com/feelio/feelio-backend/internal/chart"
	"github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/moods/service"
	"github.com/feelio/feelio-backend/internal/stats"
)

// Canvas size bounds for chart requests, in pixels.
const (
	defaultChartSize = 200
	maxChartSize     = 2048
)

type Handler struct {
	moodService *service.MoodService
}

func New(moodService *service.MoodService) *Handler {
	return &Handler{moodService: moodService}
}

type recordRequest struct {
	Emotion string `json:"emotion"`
}

type moodResponse struct {
	Date      string         `json:"date"`
	Emotion   domain.Emotion `json:"emotion"`
	Color     string         `json:"color"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type monthResponse struct {
	Year  int                 `json:"year"`
	Month time.Month          `json:"month"`
	Moods map[string]dayEntry `json:"moods"`
}

type dayEntry struct {
	Emotion string `json:"emotion"`
	Color   string `json:"color,omitempty"`
}

type statsResponse struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	MonthName string          `json:"month_name"`
	Breakdown stats.Breakdown `json:"breakdown"`
	Dominant  domain.Emotion  `json:"dominant,omitempty"`
	Chart     chart.Layout    `json:"chart"`
}

func toMoodResponse(rec domain.Record) moodResponse {
	resp := moodResponse{
		Date:    rec.Date.String(),
		Emotion: rec.Emotion,
		Color:   rec.Emotion.Color(),
	}
	if !rec.UpdatedAt.IsZero() {
		t := rec.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
