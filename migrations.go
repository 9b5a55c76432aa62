package accountctl

import "embed"

// MigrationsFS contains the SQLite migrations backing the local account,
// profile and activity stores.
//
// Files follow the NNNNN_name.up.sql / NNNNN_name.down.sql convention under a
// per-dialect directory, the layout go-persistence-bun loads with
// RegisterDialectMigrations.
//
//go:embed data/sql/migrations/sqlite/*.sql
var MigrationsFS embed.FS

// GetMigrationsFS exposes the SQL migration files so host applications can
// register them with their migration runner.
func GetMigrationsFS() embed.FS {
	return MigrationsFS
}
