// Package migrations embeds the goose SQL migrations for the authentication
// schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
