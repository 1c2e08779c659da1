package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

// SQLiteDialect targets modernc.org/sqlite. SQLite has no
// information_schema; introspection goes through sqlite_master and the
// pragma table-valued functions.
type SQLiteDialect struct{}

func (d *SQLiteDialect) CurrentSchema(db *sql.DB) (string, error) {
	return "main", nil
}

func (d *SQLiteDialect) ListTables(db *sql.DB, schema string) ([]string, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *SQLiteDialect) TableExists(db *sql.DB, schema, table string) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	return n > 0, err
}

func (d *SQLiteDialect) Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(
		`SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, dType string
		var notNull, pk int
		if err := rows.Scan(&name, &dType, &notNull, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			DataType:   strings.ToLower(dType),
			IsNullable: notNull == 0,
			IsPK:       pk > 0,
		})
	}
	return cols, rows.Err()
}

func (d *SQLiteDialect) PrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	// pk reports the 1-based position within the primary key, 0 for non-key columns.
	rows, err := db.Query(
		`SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *SQLiteDialect) ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error) {
	tables, err := d.ListTables(db, schema)
	if err != nil {
		return nil, err
	}

	var fks []ForeignKey
	for _, table := range tables {
		rows, err := db.Query(
			`SELECT "table", "from", "to" FROM pragma_foreign_key_list(?)`, table)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var refTable, from string
			var to sql.NullString
			if err := rows.Scan(&refTable, &from, &to); err != nil {
				rows.Close()
				return nil, err
			}
			fks = append(fks, ForeignKey{
				Table:     table,
				Column:    from,
				RefTable:  refTable,
				RefColumn: to.String,
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return fks, nil
}

func (d *SQLiteDialect) SelectQuery(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", QuoteAll(cols, d.Quote), d.Quote(table))
}

func (d *SQLiteDialect) ExistsQuery(table string, keyCols []string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1",
		d.Quote(table), KeyPredicate(keyCols, d.Quote, d.Placeholder))
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), QuoteAll(cols, d.Quote), vals)
}

func (d *SQLiteDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Quote(table))
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) Quote(ident string) string {
	return `"` + ident + `"`
}
