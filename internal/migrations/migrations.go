// Package migrations embeds the goose migrations for every supported
// catalog backend. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
