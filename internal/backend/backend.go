// Package backend builds the persistence layer from configuration.
//
// The server and the workers both go through New so backend selection
// logic lives in exactly one place.
package backend

import (
	"fmt"
	"log/slog"

	"financas/internal/config"
	"financas/internal/storage"
)

const (
	SQLite   = "sqlite"
	Supabase = "supabase"
)

// New returns the storage backend named by cfg.StorageBackend. Callers
// own the returned store and must Close it on shutdown.
func New(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case SQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return store, nil

	case Supabase:
		store, err := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, fmt.Errorf("initialize supabase backend: %w", err)
		}
		slog.Info("Initialized Supabase backend", "url", cfg.SupabaseURL)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %s or %s)", cfg.StorageBackend, SQLite, Supabase)
	}
}
