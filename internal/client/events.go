package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/feelio/feelio-backend/internal/realtime"
)

// ErrStopWatching may be returned by a Watch callback to end the stream
// without an error.
var ErrStopWatching = errors.New("stop watching")

// Watch follows the caller's event stream and calls fn for every event until
// ctx ends, the server closes the stream, or fn returns an error.
func (c *Client) Watch(ctx context.Context, fn func(realtime.Event) error) error {
	resp, err := c.send(ctx, c.streamClient, http.MethodGet, "/v1/events", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	var name, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if name != "" && name != "ready" && data != "" {
				var ev realtime.Event
				if err := json.Unmarshal([]byte(data), &ev); err != nil {
					return fmt.Errorf("decode %s event: %w", name, err)
				}
				if err := fn(ev); err != nil {
					if errors.Is(err, ErrStopWatching) {
						return nil
					}
					return err
				}
			}
			name, data = "", ""
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("read events: %w", err)
	}
	return nil
}
