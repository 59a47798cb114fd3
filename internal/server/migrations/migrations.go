// Package migrations embeds the goose migrations, one directory per SQL
// dialect.
package migrations

import (
	"embed"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the directory in Migrations holding d's migrations.
func Dir(d dbx.Dialect) string {
	return d.Name
}
