// Package migrations embeds goose migration files for the client database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
