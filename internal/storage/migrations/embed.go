// Package migrations embeds the goose migrations for the sqlite backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
