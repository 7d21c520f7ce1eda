// Package migrations embeds the schema migration files for the chunk store.
package migrations

import "embed"

// FS holds the SQL migration files, applied in lexical order at startup.
//
//go:embed *.sql
var FS embed.FS
