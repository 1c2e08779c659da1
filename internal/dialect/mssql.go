package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

// Helper: go-mssqldb prefers @p1, @p2 named parameters over ?
// especially when prepared statements are involved.

func (d *MSSQLDialect) CurrentSchema(db *sql.DB) (string, error) {
	var schema sql.NullString
	if err := db.QueryRow("SELECT SCHEMA_NAME()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to resolve default schema: %w", err)
	}
	if !schema.Valid || schema.String == "" {
		return "dbo", nil
	}
	return schema.String, nil
}

func (d *MSSQLDialect) ListTables(db *sql.DB, schema string) ([]string, error) {
	rows, err := db.Query(
		`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
		 ORDER BY TABLE_NAME`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *MSSQLDialect) TableExists(db *sql.DB, schema, table string) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND TABLE_TYPE = 'BASE TABLE'`,
		schema, table).Scan(&n)
	return n > 0, err
}

func (d *MSSQLDialect) Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(
		`SELECT
		   c.COLUMN_NAME,
		   c.DATA_TYPE,
		   COALESCE(c.CHARACTER_MAXIMUM_LENGTH, 0),
		   c.IS_NULLABLE,
		   CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRI' ELSE '' END,
		   COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity')
		 FROM INFORMATION_SCHEMA.COLUMNS c
		 LEFT JOIN (
		   SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
		   FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		   JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
		   WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1
		 ) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
		 WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		 ORDER BY c.ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, dType, isNull, cKey string
		var length int
		var identity sql.NullInt64
		if err := rows.Scan(&name, &dType, &length, &isNull, &cKey, &identity); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			DataType:   strings.ToLower(dType),
			Length:     length,
			IsNullable: isNull == "YES",
			IsPK:       strings.Contains(cKey, "PRI"),
			IsAutoInc:  identity.Int64 == 1,
		})
	}
	return cols, rows.Err()
}

func (d *MSSQLDialect) PrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	rows, err := db.Query(
		`SELECT kcu.COLUMN_NAME
		 FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		 JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
		 WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2
		 ORDER BY kcu.ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *MSSQLDialect) ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error) {
	rows, err := db.Query(
		`SELECT KCU1.TABLE_NAME, KCU1.COLUMN_NAME, KCU2.TABLE_NAME, KCU2.COLUMN_NAME
		 FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC
		 JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1 ON RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME
		 JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2 ON RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME
		 WHERE KCU1.TABLE_SCHEMA = @p1`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForeignKeys(rows)
}

func (d *MSSQLDialect) SelectQuery(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", QuoteAll(cols, d.Quote), d.Quote(table))
}

func (d *MSSQLDialect) ExistsQuery(table string, keyCols []string) string {
	return fmt.Sprintf("SELECT TOP 1 1 FROM %s WHERE %s",
		d.Quote(table), KeyPredicate(keyCols, d.Quote, d.Placeholder))
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), QuoteAll(cols, d.Quote), vals)
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Quote(table))
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) Quote(ident string) string {
	return "[" + ident + "]"
}
