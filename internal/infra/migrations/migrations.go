// Package migrations embeds the SQL schema so both the migrator binary and
// the test database provisioning run the exact same files.
package migrations

import "embed"

//go:embed base/*.sql
var BaseFS embed.FS

//go:embed seed/*.sql
var SeedFS embed.FS

const (
	BaseDir = "base"
	SeedDir = "seed"
)
