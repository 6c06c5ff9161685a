package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"firebase.google.com/go/v4/db"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feelio/feelio-backend/config"
	httpapi "github.com/feelio/feelio-backend/internal/api/http"
	moodsrepo "github.com/feelio/feelio-backend/internal/moods/repository"
	profilesrepo "github.com/feelio/feelio-backend/internal/profiles/repository"
	"github.com/feelio/feelio-backend/internal/storage/postgres"
)

// Stores holds the repositories selected by STORE_DRIVER.
type Stores struct {
	Profiles profilesrepo.Repository
	Moods    moodsrepo.Repository
	Checks   map[string]httpapi.Check

	pool *pgxpool.Pool
	sql  *sql.DB
}

// OpenStores builds the repositories for the configured driver. rtdb is only
// used by the firebase driver.
func OpenStores(ctx context.Context, cfg *config.Config, rtdb *db.Client) (*Stores, error) {
	s := &Stores{Checks: map[string]httpapi.Check{}}

	switch cfg.App.StoreDriver {
	case config.StoreMemory:
		s.Profiles = profilesrepo.NewMemoryRepository()
		s.Moods = moodsrepo.NewMemoryRepository()

	case config.StoreFirebase:
		if rtdb == nil {
			return nil, fmt.Errorf("firebase store needs FIREBASE_DATABASE_URL")
		}
		s.Profiles = profilesrepo.NewFirebaseRepository(rtdb)
		s.Moods = moodsrepo.NewFirebaseRepository(rtdb)

	case config.StorePostgres:
		sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}

		pool, err := OpenDB(ctx, DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			sqlDB.Close()
			return nil, err
		}

		s.sql, s.pool = sqlDB, pool
		s.Profiles = profilesrepo.NewPostgresRepository(sqlDB)
		s.Moods = moodsrepo.NewPostgresRepository(pool)
		s.Checks["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.App.StoreDriver)
	}
	return s, nil
}

func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sql != nil {
		s.sql.Close()
	}
}
