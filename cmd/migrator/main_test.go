package main

import (
	"testing"

	"github.com/fastprodman/gamestore/internal/infra/migrations"
	"github.com/fastprodman/gamestore/internal/infra/pgtestutil"
)

// The base schema is applied through the default schema_migrations table
// (pgtestutil does that), so the seed pass must version through its own
// table or its Up() degenerates into a no-op.
func TestRunMigrations_SeedAppliesAfterBase(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	err := runMigrations(db, migrations.SeedFS, migrations.SeedDir, "seed_schema_migrations")
	if err != nil {
		t.Fatalf("seed migrations: %v", err)
	}

	var games int
	err = db.QueryRow(`SELECT count(*) FROM games`).Scan(&games)
	if err != nil {
		t.Fatalf("count games: %v", err)
	}
	if games == 0 {
		t.Fatal("seed data was not applied: games table is empty")
	}

	var demoUsers int
	err = db.QueryRow(`SELECT count(*) FROM users WHERE username IN ('demo', 'collector')`).Scan(&demoUsers)
	if err != nil {
		t.Fatalf("count demo users: %v", err)
	}
	if demoUsers != 2 {
		t.Fatalf("want 2 seeded users, got %d", demoUsers)
	}

	// rerun is a no-op, not a duplicate-insert failure
	err = runMigrations(db, migrations.SeedFS, migrations.SeedDir, "seed_schema_migrations")
	if err != nil {
		t.Fatalf("seed migrations rerun: %v", err)
	}

	var gamesAfter int
	err = db.QueryRow(`SELECT count(*) FROM games`).Scan(&gamesAfter)
	if err != nil {
		t.Fatalf("count games after rerun: %v", err)
	}
	if gamesAfter != games {
		t.Fatalf("rerun changed the catalogue: %d -> %d rows", games, gamesAfter)
	}
}
