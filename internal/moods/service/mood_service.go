package service

import (
	"context"
	"fmt"
	"time"

	"github.com/feelio/feelio-backend/internal/calendar"
	"github.com/feelio/feelio-backend/internal/logging"
	"github.com/feelio/feelio-backend/internal/metrics"
	"github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/moods/repository"
	"github.com/feelio/feelio-backend/internal/realtime"
	"github.com/feelio/feelio-backend/internal/stats"
)

// Publisher is the write side of the realtime broker.
type Publisher interface {
	Publish(ctx context.Context, ev realtime.Event) error
}

type MoodService struct {
	repo     repository.Repository
	events   Publisher
	metrics  *metrics.Metrics
	location *time.Location
	now      func() time.Time
}

// Option customises a MoodService.
type Option func(*MoodService)

// WithMetrics counts recorded moods.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *MoodService) { s.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *MoodService) { s.now = now }
}

// NewMoodService builds the service. loc is the zone used to decide "today"
// when a caller does not send its own.
func NewMoodService(repo repository.Repository, events Publisher, loc *time.Location, opts ...Option) *MoodService {
	if loc == nil {
		loc = time.UTC
	}
	s := &MoodService{
		repo:     repo,
		events:   events,
		location: loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar day in loc, or in the default zone
// when loc is nil.
func (s *MoodService) Today(loc *time.Location) domain.Date {
	if loc == nil {
		loc = s.location
	}
	return domain.DateOf(s.now().In(loc))
}

// Record stores the mood of one day, replacing any earlier one. Days after
// today in loc are rejected.
func (s *MoodService) Record(ctx context.Context, uid string, date domain.Date, label string, loc *time.Location) (domain.Record, error) {
	e, err := domain.ParseEmotion(label)
	if err != nil {
		return domain.Record{}, err
	}
	if _, err := domain.NewDate(date.Year, int(date.Month), date.Day); err != nil {
		return domain.Record{}, err
	}
	if date.After(s.Today(loc)) {
		return domain.Record{}, domain.ErrFutureDate
	}

	rec := domain.Record{
		UserID:    uid,
		Date:      date,
		Emotion:   e,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Set(ctx, rec); err != nil {
		return domain.Record{}, fmt.Errorf("record mood: %w", err)
	}

	if s.metrics != nil {
		s.metrics.MoodsRecorded.WithLabelValues(string(e)).Inc()
	}
	s.publish(ctx, realtime.Event{
		Type:    realtime.EventMood,
		UserID:  uid,
		Date:    date.String(),
		Emotion: string(e),
		At:      rec.UpdatedAt,
	})
	return rec, nil
}

// Get returns the mood of one day or domain.ErrMoodNotFound.
func (s *MoodService) Get(ctx context.Context, uid string, date domain.Date) (domain.Record, error) {
	return s.repo.Get(ctx, uid, date)
}

func (s *MoodService) Month(ctx context.Context, uid string, year int, month time.Month) (domain.MonthMoods, error) {
	if _, err := domain.NewDate(year, int(month), 1); err != nil {
		return nil, err
	}
	return s.repo.Month(ctx, uid, year, month)
}

// Breakdown aggregates one month into percentages.
func (s *MoodService) Breakdown(ctx context.Context, uid string, year int, month time.Month) (stats.Breakdown, error) {
	moods, err := s.Month(ctx, uid, year, month)
	if err != nil {
		return stats.Breakdown{}, err
	}
	return stats.Aggregate(moods), nil
}

// Calendar lays out a year with the user's moods.
func (s *MoodService) Calendar(ctx context.Context, uid string, year int, loc *time.Location, weekStart time.Weekday) (calendar.Year, error) {
	if _, err := domain.NewDate(year, 1, 1); err != nil {
		return calendar.Year{}, err
	}
	moods, err := s.repo.Year(ctx, uid, year)
	if err != nil {
		return calendar.Year{}, fmt.Errorf("load year: %w", err)
	}
	return calendar.Build(year, moods, s.Today(loc), weekStart), nil
}

func (s *MoodService) publish(ctx context.Context, ev realtime.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish event failed", "type", ev.Type, "error", err)
	}
}
