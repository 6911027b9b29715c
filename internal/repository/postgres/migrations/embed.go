package migrations

import "embed"

// FS contains the embedded Postgres schema for the game history.
//
//go:embed *.sql
var FS embed.FS
