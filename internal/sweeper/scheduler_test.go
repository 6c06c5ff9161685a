package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/metrics"
)

type fakeSweeper struct {
	calls   atomic.Int32
	removed int
	err     error
}

func (f *fakeSweeper) SweepOrphans(context.Context) (int, error) {
	f.calls.Add(1)
	return f.removed, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	m := metrics.New()
	f := &fakeSweeper{removed: 3}
	s := NewScheduler(f, m, quietLogger())

	assert.Equal(t, 3, s.RunOnce(context.Background()))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SweptAccounts))

	f.removed, f.err = 1, errors.New("partial")
	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.SweptAccounts))
}

func TestStart(t *testing.T) {
	f := &fakeSweeper{}
	s := NewScheduler(f, nil, quietLogger())

	assert.Error(t, s.Start("not a schedule"))

	require.NoError(t, s.Start("* * * * * *"))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return f.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
