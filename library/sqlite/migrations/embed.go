// Package migrations holds the SQLite schema for material libraries.
package migrations

import "embed"

// FS contains embedded SQLite migrations for material storage.
//
//go:embed *.sql
var FS embed.FS
