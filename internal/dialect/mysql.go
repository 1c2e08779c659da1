package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) CurrentSchema(db *sql.DB) (string, error) {
	var schema sql.NullString
	if err := db.QueryRow("SELECT DATABASE()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to get database name: %w", err)
	}
	if !schema.Valid || schema.String == "" {
		return "", fmt.Errorf("no database selected in DSN")
	}
	return schema.String, nil
}

func (d *MysqlDialect) ListTables(db *sql.DB, schema string) ([]string, error) {
	rows, err := db.Query(
		`SELECT TABLE_NAME FROM information_schema.TABLES
		 WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		 ORDER BY TABLE_NAME`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *MysqlDialect) TableExists(db *sql.DB, schema, table string) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND TABLE_TYPE = 'BASE TABLE'`,
		schema, table).Scan(&n)
	return n > 0, err
}

func (d *MysqlDialect) Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(
		`SELECT COLUMN_NAME, DATA_TYPE, COALESCE(CHARACTER_MAXIMUM_LENGTH, 0),
		        IS_NULLABLE, COLUMN_KEY, EXTRA
		 FROM information_schema.COLUMNS
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		 ORDER BY ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, dType, isNull string
		var length int
		var cKey, extra sql.NullString
		if err := rows.Scan(&name, &dType, &length, &isNull, &cKey, &extra); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			DataType:   strings.ToLower(dType),
			Length:     length,
			IsNullable: isNull == "YES",
			IsPK:       strings.Contains(cKey.String, "PRI"),
			IsAutoInc:  strings.Contains(strings.ToLower(extra.String), "auto_increment"),
		})
	}
	return cols, rows.Err()
}

func (d *MysqlDialect) PrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	rows, err := db.Query(
		`SELECT COLUMN_NAME FROM information_schema.COLUMNS
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND COLUMN_KEY = 'PRI'
		 ORDER BY ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *MysqlDialect) ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error) {
	rows, err := db.Query(
		`SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		 FROM information_schema.KEY_COLUMN_USAGE
		 WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForeignKeys(rows)
}

func (d *MysqlDialect) SelectQuery(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", QuoteAll(cols, d.Quote), d.Quote(table))
}

func (d *MysqlDialect) ExistsQuery(table string, keyCols []string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1",
		d.Quote(table), KeyPredicate(keyCols, d.Quote, d.Placeholder))
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), QuoteAll(cols, d.Quote), vals)
}

func (d *MysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Quote(table))
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) Quote(ident string) string {
	return "`" + ident + "`"
}
