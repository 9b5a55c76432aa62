package migrations

import (
	"context"
	"database/sql"
	"errors"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Migrate runs every registered migration filesystem against sqldb through
// go-persistence-bun, validates the resulting schema and returns the Bun
// handle the stores share.
func Migrate(ctx context.Context, cfg persistence.Config, sqldb *sql.DB) (*bun.DB, error) {
	if sqldb == nil {
		return nil, errors.New("migrations: db required")
	}
	client, err := persistence.New(cfg, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, err
	}
	for _, fsys := range Filesystems() {
		client.RegisterDialectMigrations(
			fsys,
			persistence.WithDialectSourceLabel("."),
			persistence.WithValidationTargets("sqlite"),
		)
	}
	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := ValidateSchema(ctx, sqldb); err != nil {
		return nil, err
	}
	return client.DB(), nil
}
