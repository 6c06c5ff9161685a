package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelio/feelio-backend/internal/metrics"
	"github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/moods/repository"
	"github.com/feelio/feelio-backend/internal/realtime"
)

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, realtime.Event) error {
	p.calls++
	return errors.New("redis down")
}

// 2024-03-10 02:00 UTC is still 2024-03-09 in New York.
var fixedNow = time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, pub Publisher) (*MoodService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	s := NewMoodService(repository.NewMemoryRepository(), pub, time.UTC,
		WithMetrics(m),
		WithClock(func() time.Time { return fixedNow }),
	)
	return s, m
}

func TestRecord(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	s, m := newTestService(t, broker)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, "u1")
	require.NoError(t, err)
	defer sub.Close()

	date := domain.Date{Year: 2024, Month: time.March, Day: 9}
	rec, err := s.Record(ctx, "u1", date, "calm", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Calm, rec.Emotion)

	ev := <-sub.C()
	assert.Equal(t, realtime.EventMood, ev.Type)
	assert.Equal(t, "2024-03-09", ev.Date)

	_, err = s.Record(ctx, "u1", date, "Sad", nil)
	require.NoError(t, err)
	got, err := s.Get(ctx, "u1", date)
	require.NoError(t, err)
	assert.Equal(t, domain.Sad, got.Emotion)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.MoodsRecorded.WithLabelValues("Calm")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MoodsRecorded.WithLabelValues("Sad")))
}

func TestRecord_Validation(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := s.Record(ctx, "u1", domain.Date{Year: 2024, Month: time.March, Day: 9}, "Bored", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownEmotion)

	_, err = s.Record(ctx, "u1", domain.Date{Year: 2023, Month: time.February, Day: 29}, "Happy", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = s.Record(ctx, "u1", domain.Date{Year: 2024, Month: time.March, Day: 11}, "Happy", nil)
	assert.ErrorIs(t, err, domain.ErrFutureDate)
}

func TestRecord_TodayFollowsCallerZone(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	tenth := domain.Date{Year: 2024, Month: time.March, Day: 10}

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	_, err = s.Record(ctx, "u1", tenth, "Happy", ny)
	assert.ErrorIs(t, err, domain.ErrFutureDate)

	_, err = s.Record(ctx, "u1", tenth, "Happy", nil)
	assert.NoError(t, err)
}

func TestRecord_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &failingPublisher{}
	s, _ := newTestService(t, pub)

	_, err := s.Record(context.Background(), "u1", domain.Date{Year: 2024, Month: time.March, Day: 1}, "Angry", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.calls)
}

func TestBreakdownAndCalendar(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	for day, label := range map[int]string{1: "Happy", 2: "Happy", 3: "Sad"} {
		_, err := s.Record(ctx, "u1", domain.Date{Year: 2024, Month: time.March, Day: day}, label, nil)
		require.NoError(t, err)
	}

	b, err := s.Breakdown(ctx, "u1", 2024, time.March)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Total)
	assert.Equal(t, 67, b.Percentages()[domain.Happy])
	assert.Equal(t, 33, b.Percentages()[domain.Sad])

	_, err = s.Breakdown(ctx, "u1", 2024, time.Month(13))
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	cal, err := s.Calendar(ctx, "u1", 2024, nil, time.Sunday)
	require.NoError(t, err)
	march := cal.Months[2]
	assert.Equal(t, 3, march.Recorded)
	assert.True(t, march.Days[9].Today)
	assert.True(t, march.Days[10].Future)
}
