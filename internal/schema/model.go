package schema

// Sync statuses reported per table.
const (
	StatusSynced          = "synced"
	StatusNotInSource     = "not in source"
	StatusNotInTarget     = "not in target"
	StatusNoCommonColumns = "no common columns"
	StatusEmptySource     = "empty source"
	StatusFailed          = "failed"
)

type Table struct {
	Name         string
	Columns      []*Column
	ForeignKeys  []*ForeignKey
	Dependencies []string // for insertion ordering
}

type Column struct {
	Name       string
	DataType   string
	Length     int
	IsNullable bool
	IsPK       bool
	IsAutoInc  bool
	Meaning    string // inferred from name/abbreviations (e.g. "email", "price")
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// SyncResult holds the per-table counters of one sync run.
type SyncResult struct {
	Table    string
	Status   string
	Imported int
	Skipped  int
	Errors   int
	ErrorMsg string
}

// SeedResult holds the per-table counters of one seed run.
type SeedResult struct {
	Table    string
	Inserted int
	Errors   int
	ErrorMsg string
}
