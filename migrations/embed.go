// Package migrations holds the goose SQL migrations of the session table.
// cmd/planner applies them at startup when DATABASE_URL is set.
package migrations

import "embed"

// FS holds the embedded *.sql migrations for goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
