package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/wonny/stockgrade/pkg/logger"
)

// Migrate applies every pending goose migration found at the root of fsys
func (db *DB) Migrate(ctx context.Context, fsys fs.FS, log *logger.Logger) error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		log.WithFields(map[string]interface{}{
			"version":  r.Source.Version,
			"duration": r.Duration.String(),
		}).Info("Migration applied")
	}

	return nil
}
