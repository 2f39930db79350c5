package migrations

import "embed"

// FS contains the ledger schema migrations.
//
//go:embed *.sql
var FS embed.FS
