package migrations

import "embed"

// FS holds the schema migrations for every backend, one directory each.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
