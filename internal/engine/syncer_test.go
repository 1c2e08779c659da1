package engine_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

func openDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), name+".db"))
	if err != nil {
		t.Fatalf("failed to open %s db: %v", name, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func newSyncer(src, dst *sql.DB) *engine.Syncer {
	d := dialect.Get("sqlite")
	return &engine.Syncer{
		Source:        src,
		Target:        dst,
		SourceDialect: d,
		TargetDialect: d,
		SourceSchema:  "main",
		TargetSchema:  "main",
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSyncImportsMissingRows(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	for _, db := range []*sql.DB{src, dst} {
		mustExec(t, db, `CREATE TABLE households (id INTEGER PRIMARY KEY, name TEXT)`)
	}
	mustExec(t, src, `INSERT INTO households VALUES (1, 'Smith'), (2, 'Jones'), (3, 'Lee')`)
	mustExec(t, dst, `INSERT INTO households VALUES (1, 'Smith')`)

	results := newSyncer(src, dst).Run([]string{"households"}, nil)

	r := results[0]
	if r.Imported != 2 || r.Skipped != 1 || r.Errors != 0 {
		t.Errorf("got imported=%d skipped=%d errors=%d, want 2/1/0", r.Imported, r.Skipped, r.Errors)
	}
	if r.Status != schema.StatusSynced {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusSynced)
	}
	if n := countRows(t, dst, "households"); n != 3 {
		t.Errorf("target has %d rows, want 3", n)
	}
}

func TestSyncIdempotent(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	for _, db := range []*sql.DB{src, dst} {
		mustExec(t, db, `CREATE TABLE clients (id INTEGER PRIMARY KEY, name TEXT, email TEXT)`)
	}
	mustExec(t, src, `INSERT INTO clients VALUES (1, 'Ann', 'ann@x.test'), (2, 'Bob', 'bob@x.test'), (3, 'Cy', 'cy@x.test')`)

	s := newSyncer(src, dst)

	first := s.Run([]string{"clients"}, nil)[0]
	if first.Imported != 3 || first.Skipped != 0 || first.Errors != 0 {
		t.Fatalf("first run: imported=%d skipped=%d errors=%d, want 3/0/0", first.Imported, first.Skipped, first.Errors)
	}

	second := s.Run([]string{"clients"}, nil)[0]
	if second.Imported != 0 || second.Skipped != 3 || second.Errors != 0 {
		t.Errorf("second run: imported=%d skipped=%d errors=%d, want 0/3/0", second.Imported, second.Skipped, second.Errors)
	}
	if n := countRows(t, dst, "clients"); n != 3 {
		t.Errorf("target has %d rows after rerun, want 3", n)
	}
}

func TestSyncTableNotInSource(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	results := newSyncer(src, dst).Run([]string{"ghost"}, nil)

	r := results[0]
	if r.Status != schema.StatusNotInSource {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusNotInSource)
	}
	if r.Imported != 0 || r.Skipped != 0 || r.Errors != 0 {
		t.Errorf("missing table must contribute zero counts, got %+v", r)
	}
}

func TestSyncTableNotInTarget(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE alerts (id INTEGER PRIMARY KEY, message TEXT)`)
	mustExec(t, src, `INSERT INTO alerts VALUES (1, 'price drop')`)

	r := newSyncer(src, dst).Run([]string{"alerts"}, nil)[0]
	if r.Status != schema.StatusNotInTarget {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusNotInTarget)
	}
	if r.Imported != 0 || r.Skipped != 0 || r.Errors != 0 {
		t.Errorf("missing table must contribute zero counts, got %+v", r)
	}
}

func TestSyncNoCommonColumns(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE notes (note_id INTEGER PRIMARY KEY, body TEXT)`)
	mustExec(t, src, `INSERT INTO notes VALUES (1, 'hello')`)
	mustExec(t, dst, `CREATE TABLE notes (uid INTEGER PRIMARY KEY, content TEXT)`)

	r := newSyncer(src, dst).Run([]string{"notes"}, nil)[0]
	if r.Status != schema.StatusNoCommonColumns {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusNoCommonColumns)
	}
	if r.Imported != 0 || r.Skipped != 0 || r.Errors != 0 {
		t.Errorf("disjoint schemas must contribute zero counts, got %+v", r)
	}
}

func TestSyncEmptySource(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	for _, db := range []*sql.DB{src, dst} {
		mustExec(t, db, `CREATE TABLE tasks (id INTEGER PRIMARY KEY, title TEXT)`)
	}

	r := newSyncer(src, dst).Run([]string{"tasks"}, nil)[0]
	if r.Status != schema.StatusEmptySource {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusEmptySource)
	}
	if r.Imported != 0 || r.Skipped != 0 || r.Errors != 0 {
		t.Errorf("empty table must contribute zero counts, got %+v", r)
	}
}

func TestSyncRowErrorDoesNotAbortTable(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE trades (id INTEGER PRIMARY KEY, qty INTEGER)`)
	mustExec(t, src, `INSERT INTO trades VALUES (1, 5), (2, -1), (3, 7)`)
	mustExec(t, dst, `CREATE TABLE trades (id INTEGER PRIMARY KEY, qty INTEGER CHECK (qty >= 0))`)

	r := newSyncer(src, dst).Run([]string{"trades"}, nil)[0]
	if r.Imported != 2 || r.Errors != 1 || r.Skipped != 0 {
		t.Errorf("got imported=%d skipped=%d errors=%d, want 2/0/1", r.Imported, r.Skipped, r.Errors)
	}
	if r.ErrorMsg == "" {
		t.Error("expected the first row error to be recorded")
	}
	if n := countRows(t, dst, "trades"); n != 2 {
		t.Errorf("target has %d rows, want 2", n)
	}
}

func TestSyncCompositeKey(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	ddl := `CREATE TABLE positions (
		account_id INTEGER,
		symbol TEXT,
		quantity REAL,
		PRIMARY KEY (account_id, symbol)
	)`
	mustExec(t, src, ddl)
	mustExec(t, dst, ddl)

	mustExec(t, src, `INSERT INTO positions VALUES (1, 'AAPL', 10), (1, 'MSFT', 20), (2, 'AAPL', 30)`)
	// Same key, locally diverged quantity: must be skipped, not overwritten.
	mustExec(t, dst, `INSERT INTO positions VALUES (1, 'AAPL', 99)`)

	r := newSyncer(src, dst).Run([]string{"positions"}, nil)[0]
	if r.Imported != 2 || r.Skipped != 1 || r.Errors != 0 {
		t.Errorf("got imported=%d skipped=%d errors=%d, want 2/1/0", r.Imported, r.Skipped, r.Errors)
	}

	var qty float64
	if err := dst.QueryRow(`SELECT quantity FROM positions WHERE account_id = 1 AND symbol = 'AAPL'`).Scan(&qty); err != nil {
		t.Fatal(err)
	}
	if qty != 99 {
		t.Errorf("existing row was overwritten: quantity = %v, want 99", qty)
	}
}

func TestSyncUsesCommonColumnsOnly(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE advisors (id INTEGER PRIMARY KEY, name TEXT, legacy_code TEXT)`)
	mustExec(t, src, `INSERT INTO advisors VALUES (1, 'Dana', 'X1'), (2, 'Eli', 'X2')`)
	mustExec(t, dst, `CREATE TABLE advisors (id INTEGER PRIMARY KEY, name TEXT, region TEXT DEFAULT 'unset')`)

	r := newSyncer(src, dst).Run([]string{"advisors"}, nil)[0]
	if r.Imported != 2 || r.Errors != 0 {
		t.Fatalf("got imported=%d errors=%d, want 2/0", r.Imported, r.Errors)
	}

	var name, region string
	if err := dst.QueryRow(`SELECT name, region FROM advisors WHERE id = 1`).Scan(&name, &region); err != nil {
		t.Fatal(err)
	}
	if name != "Dana" || region != "unset" {
		t.Errorf("got name=%q region=%q, want Dana/unset", name, region)
	}
}

func TestSyncKeyOverride(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	// No primary keys anywhere: the override is the only correct identity.
	for _, db := range []*sql.DB{src, dst} {
		mustExec(t, db, `CREATE TABLE quotes (captured_at TEXT, symbol TEXT, price REAL)`)
	}
	mustExec(t, src, `INSERT INTO quotes VALUES ('2026-01-02', 'AAPL', 180), ('2026-01-02', 'MSFT', 410)`)
	mustExec(t, dst, `INSERT INTO quotes VALUES ('2026-01-02', 'AAPL', 180)`)

	s := newSyncer(src, dst)
	s.Keys = map[string][]string{"quotes": {"captured_at", "symbol"}}

	r := s.Run([]string{"quotes"}, nil)[0]
	if r.Imported != 1 || r.Skipped != 1 || r.Errors != 0 {
		t.Errorf("got imported=%d skipped=%d errors=%d, want 1/1/0", r.Imported, r.Skipped, r.Errors)
	}
}

func TestSyncMaxRowErrors(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE trades (id INTEGER PRIMARY KEY, qty INTEGER)`)
	mustExec(t, src, `INSERT INTO trades VALUES (1, -1), (2, -2), (3, -3), (4, 4)`)
	mustExec(t, dst, `CREATE TABLE trades (id INTEGER PRIMARY KEY, qty INTEGER CHECK (qty >= 0))`)

	s := newSyncer(src, dst)
	s.MaxRowErrors = 2

	r := s.Run([]string{"trades"}, nil)[0]
	if r.Status != schema.StatusFailed {
		t.Errorf("got status %q, want %q", r.Status, schema.StatusFailed)
	}
	if r.Errors != 2 {
		t.Errorf("got errors=%d, want 2", r.Errors)
	}
}

func TestSyncContinuesAfterFailedTable(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	mustExec(t, src, `CREATE TABLE clients (id INTEGER PRIMARY KEY, name TEXT)`)
	mustExec(t, src, `INSERT INTO clients VALUES (1, 'Ann')`)
	mustExec(t, dst, `CREATE TABLE clients (id INTEGER PRIMARY KEY, name TEXT)`)

	results := newSyncer(src, dst).Run([]string{"ghost", "clients"}, nil)

	if results[0].Status != schema.StatusNotInSource {
		t.Errorf("first table: got status %q", results[0].Status)
	}
	if results[1].Imported != 1 {
		t.Errorf("second table must still be processed, got %+v", results[1])
	}

	imported, skipped, errCount := engine.Totals(results)
	if imported != 1 || skipped != 0 || errCount != 0 {
		t.Errorf("totals = %d/%d/%d, want 1/0/0", imported, skipped, errCount)
	}
}

func TestVerifyCounts(t *testing.T) {
	src := openDB(t, "src")
	dst := openDB(t, "dst")

	d := dialect.Get("sqlite")

	mustExec(t, src, `CREATE TABLE clients (id INTEGER PRIMARY KEY)`)
	mustExec(t, src, `INSERT INTO clients VALUES (1), (2)`)
	mustExec(t, dst, `CREATE TABLE clients (id INTEGER PRIMARY KEY)`)
	mustExec(t, dst, `INSERT INTO clients VALUES (1), (2)`)

	mustExec(t, src, `CREATE TABLE tasks (id INTEGER PRIMARY KEY)`)
	mustExec(t, src, `INSERT INTO tasks VALUES (1), (2), (3)`)
	mustExec(t, dst, `CREATE TABLE tasks (id INTEGER PRIMARY KEY)`)
	mustExec(t, dst, `INSERT INTO tasks VALUES (1)`)

	pairs := engine.VerifyCounts(src, dst, d, d, []string{"clients", "tasks", "ghost"})

	if pairs[0].Status != "MATCH" || pairs[0].Source != 2 || pairs[0].Target != 2 {
		t.Errorf("clients: %+v", pairs[0])
	}
	if pairs[1].Status == "MATCH" || pairs[1].Source != 3 || pairs[1].Target != 1 {
		t.Errorf("tasks must report a diff: %+v", pairs[1])
	}
	if pairs[2].Source != -1 {
		t.Errorf("ghost must report a count failure: %+v", pairs[2])
	}
}
