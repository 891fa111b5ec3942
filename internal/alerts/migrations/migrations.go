// Package migrations embeds the SQL migrations for the alerts database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
