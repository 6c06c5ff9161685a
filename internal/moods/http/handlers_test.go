package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/chart"
	"github.com/feelio/feelio-backend/internal/moods/repository"
	"github.com/feelio/feelio-backend/internal/moods/service"
)

// 2024-03-10 02:00 UTC, still March 9th in New York.
var fixedNow = time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewMoodService(repository.NewMemoryRepository(), nil, time.UTC,
		service.WithClock(func() time.Time { return fixedNow }))

	r := gin.New()
	g := r.Group("/v1")
	g.Use(func(c *gin.Context) {
		c.Set(auth.CtxFirebaseUID, "u1")
		c.Next()
	})
	New(svc).Register(g)
	return r
}

func do(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordAndGetMood(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/v1/moods/2024/03/09", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/v1/moods/2024/03/09", `{"emotion":"Calm"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/v1/moods/2024/03/09", `{"emotion":"Sad"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/moods/2024/03/09", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Mood moodResponse `json:"mood"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sad", string(resp.Mood.Emotion))
	assert.Equal(t, "#5a9ad5", resp.Mood.Color)
	assert.Equal(t, "2024-03-09", resp.Mood.Date)

	w = do(r, http.MethodGet, "/v1/moods/2024/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"09":{"emotion":"Sad"`)
}

func TestRecordMood_Errors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name    string
		path    string
		body    string
		headers []string
		code    int
	}{
		{"unknown emotion", "/v1/moods/2024/03/09", `{"emotion":"Bored"}`, nil, 400},
		{"bad day", "/v1/moods/2024/02/30", `{"emotion":"Happy"}`, nil, 400},
		{"non numeric", "/v1/moods/2024/xx/01", `{"emotion":"Happy"}`, nil, 400},
		{"future", "/v1/moods/2024/03/11", `{"emotion":"Happy"}`, nil, 400},
		{"future for caller zone", "/v1/moods/2024/03/10", `{"emotion":"Happy"}`, []string{TimezoneHeader, "America/New_York"}, 400},
		{"today in server zone", "/v1/moods/2024/03/10", `{"emotion":"Happy"}`, nil, 200},
		{"unknown zone falls back", "/v1/moods/2024/03/10", `{"emotion":"Happy"}`, []string{TimezoneHeader, "Mars/Olympus"}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPut, tt.path, tt.body, tt.headers...)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestGetStats(t *testing.T) {
	r := setupRouter(t)
	for _, day := range []string{"01", "02"} {
		require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/v1/moods/2024/03/"+day, `{"emotion":"Happy"}`).Code)
	}
	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/v1/moods/2024/03/03", `{"emotion":"Sad"}`).Code)

	w := do(r, http.MethodGet, "/v1/stats/2024/03?size=100", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Breakdown.Total)
	assert.Equal(t, "Happy", string(resp.Dominant))
	assert.Equal(t, "March", resp.MonthName)
	assert.Equal(t, chart.ModeSegmented, resp.Chart.Mode)
	require.Len(t, resp.Chart.Wedges, 2)
	assert.True(t, strings.HasPrefix(resp.Chart.Wedges[0].Path, "M 50 50 L 50 20 A 30 30 0 1 1 "))

	w = do(r, http.MethodGet, "/v1/stats/2024/04", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chart.ModeEmpty, resp.Chart.Mode)
	assert.Equal(t, float64(defaultChartSize), resp.Chart.Size)
}

func TestGetChartSVG(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/v1/stats/2024/03/chart.svg?theme=dark", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `fill="#404040"`)
	assert.Contains(t, w.Body.String(), `fill="#1a1a1a"`)
}

func TestGetCalendar(t *testing.T) {
	r := setupRouter(t)
	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/v1/moods/2024/01/15", `{"emotion":"Angry"}`).Code)

	w := do(r, http.MethodGet, "/v1/calendar/2024?week_start=monday", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calendar struct {
			WeekStart time.Weekday `json:"week_start"`
			Months    []struct {
				Leading  int `json:"leading"`
				Recorded int `json:"recorded"`
			} `json:"months"`
		} `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, time.Monday, resp.Calendar.WeekStart)
	require.Len(t, resp.Calendar.Months, 12)
	assert.Equal(t, 0, resp.Calendar.Months[0].Leading)
	assert.Equal(t, 1, resp.Calendar.Months[0].Recorded)

	w = do(r, http.MethodGet, "/v1/calendar/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
