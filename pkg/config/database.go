package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storyweave/backend/internal/store"
)

// NewStore builds the configured storage backend. The two adapters are
// interchangeable behind the store.Store interface; the backend is
// selected by configuration, not hard-wired into the core.
func NewStore(cfg *Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required for the postgres backend")
		}
		// TranslateError turns unique-index violations into
		// gorm.ErrDuplicatedKey, which the adapter maps to conflicts.
		db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return store.NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
