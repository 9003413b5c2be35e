// Package migrations embeds the PostgreSQL schema so the binary can migrate without the source tree.
package migrations

import "embed"

// FS holds every NNN_name.up.sql / NNN_name.down.sql pair.
//
//go:embed *.sql
var FS embed.FS
