package migrations_test

import (
	"context"
	"testing"

	"github.com/playperu/citydistance/internal/database"
	"github.com/playperu/citydistance/internal/migrations"
)

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "cities",
	).Scan(&name)
	if err != nil {
		t.Fatalf("table cities not found: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM cities").Scan(&n); err != nil {
		t.Fatalf("counting cities: %v", err)
	}
	if n != 30 {
		t.Errorf("seeded %d cities, want 30", n)
	}

	v, err := migrations.Version(ctx, db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}
