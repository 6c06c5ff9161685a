// Package realtime fans out per-user data change events to open streams.
package realtime

import (
	"context"
	"time"
)

// Event types.
const (
	EventMood           = "mood"
	EventProfile        = "profile"
	EventAccountDeleted = "account_deleted"
)

// Event is one change to a user's data.
type Event struct {
	Type    string    `json:"type"`
	UserID  string    `json:"user_id"`
	Date    string    `json:"date,omitempty"`
	Emotion string    `json:"emotion,omitempty"`
	At      time.Time `json:"at"`
}

// Broker publishes events and hands out per-user subscriptions.
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, userID string) (Subscription, error)
}

// Subscription delivers the events of one user until Close is called.
// C is closed after Close.
type Subscription interface {
	C() <-chan Event
	Close() error
}

const bufferSize = 16
