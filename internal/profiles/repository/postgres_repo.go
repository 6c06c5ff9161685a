package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/feelio/feelio-backend/internal/profiles/domain"
)

// PostgresRepository stores profiles in the profiles table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get retrieves a profile by Firebase UID
func (r *PostgresRepository) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	query := `
		SELECT uid, email, display_name, avatar_index, created_at, updated_at
		FROM profiles
		WHERE uid = $1
	`

	var p domain.Profile
	var name sql.NullString
	var avatar sql.NullInt32

	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&p.UID,
		&p.Email,
		&name,
		&avatar,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	if name.Valid {
		p.Name = &name.String
	}
	if avatar.Valid {
		a := int(avatar.Int32)
		p.AvatarID = &a
	}
	return &p, nil
}

// Create writes the sign-up stub. A leftover row for the same uid is reset.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (uid, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (uid) DO UPDATE
		SET email = EXCLUDED.email, display_name = NULL, avatar_index = NULL,
		    created_at = NOW(), updated_at = NOW()
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query, p.UID, p.Email).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update applies the non-nil fields of upd.
func (r *PostgresRepository) Update(ctx context.Context, uid string, upd domain.Update) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET display_name = COALESCE($2, display_name),
		    avatar_index = COALESCE($3, avatar_index),
		    updated_at = NOW()
		WHERE uid = $1
	`

	var name sql.NullString
	if upd.Name != nil {
		name = sql.NullString{String: *upd.Name, Valid: true}
	}
	var avatar sql.NullInt32
	if upd.AvatarID != nil {
		avatar = sql.NullInt32{Int32: int32(*upd.AvatarID), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, uid, name, avatar)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return r.Get(ctx, uid)
}

func (r *PostgresRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE uid = $1`, uid)
	return err
}

func (r *PostgresRepository) ListUIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT uid FROM profiles ORDER BY uid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, rows.Err()
}
