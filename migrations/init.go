package migrations

import (
	"io/fs"

	accountctl "github.com/goliatone/go-accountctl"
)

func init() {
	coreFS, err := fs.Sub(accountctl.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
