package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/chart"
	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/theme"
)

// TimezoneHeader carries the caller's IANA zone used to decide "today".
const TimezoneHeader = "X-Timezone"

// RecordMood stores the mood of one day.
func (h *Handler) RecordMood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	date, err := dateParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.moodService.Record(c.Request.Context(), uid, date, req.Emotion, location(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mood": toMoodResponse(rec)})
}

// GetMood returns the mood stored for one day, shown before re-recording.
func (h *Handler) GetMood(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	date, err := dateParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	rec, err := h.moodService.Get(c.Request.Context(), uid, date)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mood": toMoodResponse(rec)})
}

// GetMonth returns the raw day to label map of a month.
func (h *Handler) GetMonth(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, err := monthParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	moods, err := h.moodService.Month(c.Request.Context(), uid, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := monthResponse{Year: year, Month: month, Moods: make(map[string]dayEntry, len(moods))}
	for day, label := range moods {
		resp.Moods[fmt.Sprintf("%02d", day)] = dayEntry{
			Emotion: label,
			Color:   domain.Emotion(label).Color(),
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetCalendar returns the year grid with mood overlays.
func (h *Handler) GetCalendar(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		writeError(c, domain.ErrInvalidDate)
		return
	}

	weekStart := time.Sunday
	if strings.EqualFold(c.Query("week_start"), "monday") {
		weekStart = time.Monday
	}

	cal, err := h.moodService.Calendar(c.Request.Context(), uid, year, location(c), weekStart)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calendar": cal})
}

// GetStats returns the month breakdown and the chart layout.
func (h *Handler) GetStats(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, err := monthParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.moodService.Breakdown(c.Request.Context(), uid, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := statsResponse{
		Year:      year,
		Month:     month,
		MonthName: month.String(),
		Breakdown: b,
		Chart:     chart.Build(b.Percentages(), chartSize(c)),
	}
	if e, ok := b.Dominant(); ok {
		resp.Dominant = e
	}
	c.JSON(http.StatusOK, resp)
}

// GetChartSVG renders the month chart for the requested theme.
func (h *Handler) GetChartSVG(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, err := monthParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.moodService.Breakdown(c.Request.Context(), uid, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	layout := chart.Build(b.Percentages(), chartSize(c))
	if err := chart.RenderSVG(&buf, layout, theme.Named(c.Query("theme"))); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func requireUser(c *gin.Context) (string, bool) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return uid, true
}

func dateParams(c *gin.Context) (domain.Date, error) {
	parts := make([]int, 3)
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(c.Param(name))
		if err != nil {
			return domain.Date{}, domain.ErrInvalidDate
		}
		parts[i] = n
	}
	return domain.NewDate(parts[0], parts[1], parts[2])
}

func monthParams(c *gin.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, domain.ErrInvalidDate
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, domain.ErrInvalidDate
	}
	if _, err := domain.NewDate(year, month, 1); err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}

// location returns the zone named by the X-Timezone header, or nil to use the
// server default. Unknown names fall back to the default too.
func location(c *gin.Context) *time.Location {
	name := strings.TrimSpace(c.GetHeader(TimezoneHeader))
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.FromContext(c.Request.Context()).Debug("ignoring unknown time zone", "tz", name)
		return nil
	}
	return loc
}

func chartSize(c *gin.Context) float64 {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil || size <= 0 {
		return defaultChartSize
	}
	if size > maxChartSize {
		return maxChartSize
	}
	return float64(size)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownEmotion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose one of the listed emotions."})
	case errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date."})
	case errors.Is(err, domain.ErrFutureDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot record a mood for a future date."})
	case errors.Is(err, domain.ErrMoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No mood recorded for this date."})
	default:
		logging.FromContext(c.Request.Context()).Error("mood request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
