// Package migrations contains embedded SQL migrations for the SQLite store.
package migrations

import "embed"

//go:embed table/*.sql
var TableFS embed.FS
