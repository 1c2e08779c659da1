package engine_test

import (
	"testing"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

func TestSeedFillsTablesInDependencyOrder(t *testing.T) {
	db := openDB(t, "seed")
	d := dialect.Get("sqlite")

	mustExec(t, db, `CREATE TABLE households (id TEXT PRIMARY KEY, name TEXT NOT NULL)`)
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		household_id TEXT NOT NULL REFERENCES households(id),
		opened_at TEXT
	)`)

	tables, err := schema.Inspect(db, d, "main")
	if err != nil {
		t.Fatal(err)
	}

	results := engine.Seed(db, d, tables, 5, nil)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, r := range results {
		if r.Inserted != 5 || r.Errors != 0 {
			t.Errorf("table %s: inserted=%d errors=%d, want 5/0", r.Table, r.Inserted, r.Errors)
		}
	}

	// Every generated account must reference a seeded household.
	var orphans int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM accounts a
		WHERE NOT EXISTS (SELECT 1 FROM households h WHERE h.id = a.household_id)
	`).Scan(&orphans)
	if err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d accounts reference missing households", orphans)
	}
}

func TestSeedCountsConstraintViolations(t *testing.T) {
	db := openDB(t, "seedbad")
	d := dialect.Get("sqlite")

	// Single-value domain: every row after the first violates the
	// primary key, so errors accumulate while seeding continues.
	mustExec(t, db, `CREATE TABLE flags (enabled INTEGER PRIMARY KEY CHECK (enabled IN (0, 1)))`)

	tables, err := schema.Inspect(db, d, "main")
	if err != nil {
		t.Fatal(err)
	}

	results := engine.Seed(db, d, tables, 5, nil)
	r := results[0]
	if r.Inserted < 1 || r.Inserted > 2 {
		t.Errorf("inserted=%d, want 1 or 2 distinct flag values", r.Inserted)
	}
	if r.Errors == 0 {
		t.Error("expected duplicate-key errors to be counted")
	}
}
