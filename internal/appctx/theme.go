package appctx

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/feelio/feelio-backend/internal/appctx/kv"
	"github.com/feelio/feelio-backend/internal/theme"
)

// ThemeStore owns the dark-mode flag. Subscribers are called synchronously,
// in subscription order, after every change.
type ThemeStore struct {
	store *kv.Store

	mu     sync.Mutex
	dark   bool
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(dark bool)
}

// NewThemeStore reads the persisted flag. A missing or unreadable value means
// light mode.
func NewThemeStore(store *kv.Store) (*ThemeStore, error) {
	t := &ThemeStore{store: store}

	raw, ok, err := store.Get(KeyDarkMode)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyDarkMode, err)
	}
	if ok {
		var dark bool
		if json.Unmarshal(raw, &dark) == nil {
			t.dark = dark
		}
	}
	return t, nil
}

func (t *ThemeStore) IsDark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Colors returns the colour set of the current mode.
func (t *ThemeStore) Colors() theme.Colors {
	return theme.For(t.IsDark())
}

// SetDark persists the flag and notifies subscribers. Setting the current
// value again still notifies.
func (t *ThemeStore) SetDark(dark bool) error {
	raw, _ := json.Marshal(dark)
	if err := t.store.Set(KeyDarkMode, raw); err != nil {
		return fmt.Errorf("write %s: %w", KeyDarkMode, err)
	}

	t.mu.Lock()
	t.dark = dark
	subs := make([]subscriber, len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, s := range subs {
		s.fn(dark)
	}
	return nil
}

// Toggle flips the flag and returns the new value.
func (t *ThemeStore) Toggle() (bool, error) {
	dark := !t.IsDark()
	return dark, t.SetDark(dark)
}

// Subscribe registers fn and returns the function that removes it.
func (t *ThemeStore) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, subscriber{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i], t.subs[i+1:]...)
				return
			}
		}
	}
}
