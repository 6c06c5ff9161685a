package postgres

import (
	"fmt"

	"github.com/feelio/feelio-backend/config"
)

// DSN returns the connection string: the explicit DSN when configured,
// otherwise one built from the discrete fields.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
