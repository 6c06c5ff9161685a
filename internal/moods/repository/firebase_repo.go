package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"firebase.google.com/go/v4/db"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// FirebaseRepository stores moods in the Realtime Database at
// users/{uid}/moods/{YYYY}/{MM}/{DD}.
type FirebaseRepository struct {
	client *db.Client
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{client: client}
}

func moodsPath(uid string) string {
	return "users/" + uid + "/moods"
}

func dayPath(uid string, d domain.Date) string {
	y, m, day := d.Keys()
	return fmt.Sprintf("%s/%s/%s/%s", moodsPath(uid), y, m, day)
}

func (r *FirebaseRepository) Set(ctx context.Context, rec domain.Record) error {
	if err := r.client.NewRef(dayPath(rec.UserID, rec.Date)).Set(ctx, string(rec.Emotion)); err != nil {
		return fmt.Errorf("write mood: %w", err)
	}
	return nil
}

func (r *FirebaseRepository) Get(ctx context.Context, uid string, date domain.Date) (domain.Record, error) {
	var label string
	if err := r.client.NewRef(dayPath(uid, date)).Get(ctx, &label); err != nil {
		return domain.Record{}, fmt.Errorf("read mood: %w", err)
	}
	if label == "" {
		return domain.Record{}, domain.ErrMoodNotFound
	}
	return domain.Record{UserID: uid, Date: date, Emotion: domain.Emotion(label)}, nil
}

func (r *FirebaseRepository) Month(ctx context.Context, uid string, year int, month time.Month) (domain.MonthMoods, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("%s/%d/%s", moodsPath(uid), year, domain.MonthKey(month))
	if err := r.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("read month: %w", err)
	}
	return DecodeMonth(raw)
}

func (r *FirebaseRepository) Year(ctx context.Context, uid string, year int) (domain.YearMoods, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("%s/%d", moodsPath(uid), year)
	if err := r.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("read year: %w", err)
	}
	return DecodeYear(raw)
}

func (r *FirebaseRepository) DeleteAll(ctx context.Context, uid string) error {
	if err := r.client.NewRef(moodsPath(uid)).Delete(ctx); err != nil {
		return fmt.Errorf("delete moods: %w", err)
	}
	return nil
}
