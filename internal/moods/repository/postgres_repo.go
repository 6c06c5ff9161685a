package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// Querier is the part of *pgxpool.Pool the repository runs statements on.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores moods in the moods table, one row per user and day.
type PostgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Set(ctx context.Context, rec domain.Record) error {
	const q = `
insert into moods (uid, day, emotion, updated_at)
values ($1, $2, $3, now())
on conflict (uid, day) do update
set
  emotion = excluded.emotion,
  updated_at = now();
`
	if _, err := r.db.Exec(ctx, q, rec.UserID, rec.Date.Time(), string(rec.Emotion)); err != nil {
		return fmt.Errorf("upsert mood: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, uid string, date domain.Date) (domain.Record, error) {
	const q = `select emotion, updated_at from moods where uid = $1 and day = $2`

	rec := domain.Record{UserID: uid, Date: date}
	var label string
	err := r.db.QueryRow(ctx, q, uid, date.Time()).Scan(&label, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Record{}, domain.ErrMoodNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("get mood: %w", err)
	}
	rec.Emotion = domain.Emotion(label)
	return rec, nil
}

func (r *PostgresRepository) Month(ctx context.Context, uid string, year int, month time.Month) (domain.MonthMoods, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	yr, err := r.between(ctx, uid, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	if m := yr[month]; m != nil {
		return m, nil
	}
	return domain.MonthMoods{}, nil
}

func (r *PostgresRepository) Year(ctx context.Context, uid string, year int) (domain.YearMoods, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return r.between(ctx, uid, from, from.AddDate(1, 0, 0))
}

func (r *PostgresRepository) between(ctx context.Context, uid string, from, to time.Time) (domain.YearMoods, error) {
	const q = `
select day, emotion
from moods
where uid = $1 and day >= $2 and day < $3
order by day;
`
	rows, err := r.db.Query(ctx, q, uid, from, to)
	if err != nil {
		return nil, fmt.Errorf("query moods: %w", err)
	}
	defer rows.Close()

	out := domain.YearMoods{}
	for rows.Next() {
		var day time.Time
		var label string
		if err := rows.Scan(&day, &label); err != nil {
			return nil, fmt.Errorf("scan mood: %w", err)
		}
		if out[day.Month()] == nil {
			out[day.Month()] = domain.MonthMoods{}
		}
		out[day.Month()][day.Day()] = label
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, uid string) error {
	if _, err := r.db.Exec(ctx, `delete from moods where uid = $1`, uid); err != nil {
		return fmt.Errorf("delete moods: %w", err)
	}
	return nil
}
