// Package migrations embeds the schema files applied at startup, one per
// store dialect.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
