package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/internal/auth"
	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/metrics"
	"github.com/feelio/feelio-backend/internal/realtime"
)

// EventsHandler streams the caller's data changes as server-sent events.
type EventsHandler struct {
	broker    realtime.Broker
	metrics   *metrics.Metrics
	keepAlive time.Duration

	// done ends every open stream, on server shutdown.
	done <-chan struct{}
}

func NewEventsHandler(broker realtime.Broker, m *metrics.Metrics, done <-chan struct{}) *EventsHandler {
	return &EventsHandler{broker: broker, metrics: m, keepAlive: 15 * time.Second, done: done}
}

func (h *EventsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/events", h.Stream)
}

// Stream holds one subscription for the lifetime of the request. The
// subscription is released when the client disconnects or the account is
// deleted.
func (h *EventsHandler) Stream(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()
	sub, err := h.broker.Subscribe(ctx, uid)
	if err != nil {
		logging.FromContext(ctx).Error("subscribe failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates unavailable"})
		return
	}
	defer sub.Close()

	if h.metrics != nil {
		h.metrics.ActiveStreams.Inc()
		defer h.metrics.ActiveStreams.Dec()
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Status(http.StatusOK)
	fmt.Fprint(c.Writer, "event: ready\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-h.done:
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			data, _ := json.Marshal(ev)
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
			if ev.Type == realtime.EventAccountDeleted {
				return
			}
		}
	}
}
