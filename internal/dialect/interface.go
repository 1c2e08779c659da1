package dialect

import "database/sql"

// ColumnInfo describes one column as reported by the catalog,
// in physical (ordinal) position order.
type ColumnInfo struct {
	Name       string
	DataType   string
	Length     int
	IsNullable bool
	IsPK       bool
	IsAutoInc  bool
}

// ForeignKey is a single-column foreign key reference used for
// dependency ordering.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// Dialect abstracts database-specific operations.
type Dialect interface {
	// Catalog Introspection
	CurrentSchema(db *sql.DB) (string, error)
	ListTables(db *sql.DB, schema string) ([]string, error)
	TableExists(db *sql.DB, schema, table string) (bool, error)
	Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error)
	PrimaryKey(db *sql.DB, schema, table string) ([]string, error)
	ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error)

	// Query Generation
	SelectQuery(table string, cols []string) string
	ExistsQuery(table string, keyCols []string) string
	InsertQuery(table string, cols []string) string
	CountQuery(table string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1, etc.
	Quote(ident string) string
}
