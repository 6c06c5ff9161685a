package picker

import (
	"context"
	"fmt"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// State of a picker session.
type State int

const (
	Idle State = iota
	Provisional
)

func (s State) String() string {
	if s == Provisional {
		return "provisional"
	}
	return "idle"
}

// CommitFunc persists the confirmed emotion.
type CommitFunc func(ctx context.Context, e domain.Emotion) error

// Result describes what a tap did.
type Result struct {
	State     State
	Selected  domain.Emotion
	Committed bool
}

// Machine is the two-tap confirmation used by the mood entry view. The first
// tap only highlights; tapping the highlighted emotion again commits it.
type Machine struct {
	state    State
	selected domain.Emotion
	commit   CommitFunc
}

func NewMachine(commit CommitFunc) *Machine {
	return &Machine{commit: commit}
}

func (m *Machine) State() State { return m.state }

// Selected returns the provisionally selected emotion, if any.
func (m *Machine) Selected() (domain.Emotion, bool) {
	return m.selected, m.state == Provisional
}

// Tap feeds one tap into the machine. A failed commit leaves the selection in
// place so the user can tap again.
func (m *Machine) Tap(ctx context.Context, e domain.Emotion) (Result, error) {
	if !e.Valid() {
		return m.result(false), domain.ErrUnknownEmotion
	}

	if m.state == Provisional && m.selected == e {
		if err := m.commit(ctx, e); err != nil {
			return m.result(false), fmt.Errorf("commit %s: %w", e, err)
		}
		m.Reset()
		return Result{State: Idle, Selected: e, Committed: true}, nil
	}

	m.state = Provisional
	m.selected = e
	return m.result(false), nil
}

// Reset drops any provisional selection.
func (m *Machine) Reset() {
	m.state = Idle
	m.selected = ""
}

func (m *Machine) result(committed bool) Result {
	return Result{State: m.state, Selected: m.selected, Committed: committed}
}
