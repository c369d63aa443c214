package factory

import (
	"fmt"

	"github.com/tokosena/tokosena/server/internal/config"
	"github.com/tokosena/tokosena/server/internal/store"
	"github.com/tokosena/tokosena/server/internal/store/postgres"
	"github.com/tokosena/tokosena/server/internal/store/sqlite"
)

// NewStore selects the store driver based on cfg.DBDriver.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.New(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.New(db)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
