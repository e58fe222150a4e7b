// Package migrations holds the goose SQL migrations for the tracker database.
package migrations

import "embed"

// FS contains the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
