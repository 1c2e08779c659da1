package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) CurrentSchema(db *sql.DB) (string, error) {
	var schema string
	if err := db.QueryRow("SELECT current_schema()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to resolve current schema: %w", err)
	}
	if schema == "" {
		return "public", nil
	}
	return schema, nil
}

func (d *PostgresDialect) ListTables(db *sql.DB, schema string) ([]string, error) {
	rows, err := db.Query(
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		 ORDER BY table_name`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *PostgresDialect) TableExists(db *sql.DB, schema, table string) (bool, error) {
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (
		   SELECT 1 FROM information_schema.tables
		   WHERE table_schema = $1 AND table_name = $2 AND table_type = 'BASE TABLE'
		 )`, schema, table).Scan(&exists)
	return exists, err
}

func (d *PostgresDialect) Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error) {
	// identity via is_identity or a nextval() default (serial columns).
	rows, err := db.Query(
		`SELECT
		   c.column_name,
		   c.udt_name,
		   COALESCE(c.character_maximum_length, 0),
		   c.is_nullable,
		   (SELECT 'PRI' FROM information_schema.table_constraints tc
		    JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
		    WHERE tc.constraint_type = 'PRIMARY KEY'
		    AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1),
		   c.is_identity,
		   c.column_default
		 FROM information_schema.columns c
		 WHERE c.table_schema = $1 AND c.table_name = $2
		 ORDER BY c.ordinal_position`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, udt, isNull string
		var length int
		var cKey, isIdent, cDefault sql.NullString
		if err := rows.Scan(&name, &udt, &length, &isNull, &cKey, &isIdent, &cDefault); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			DataType:   d.normalizeType(udt),
			Length:     length,
			IsNullable: isNull == "YES",
			IsPK:       strings.Contains(cKey.String, "PRI"),
			IsAutoInc:  isIdent.String == "YES" || strings.HasPrefix(cDefault.String, "nextval"),
		})
	}
	return cols, rows.Err()
}

func (d *PostgresDialect) PrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	rows, err := db.Query(
		`SELECT kcu.column_name
		 FROM information_schema.key_column_usage kcu
		 JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
		 WHERE kcu.table_schema = $1 AND kcu.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'
		 ORDER BY kcu.ordinal_position`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *PostgresDialect) ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error) {
	rows, err := db.Query(
		`SELECT kcu.table_name, kcu.column_name, ccu.table_name, ccu.column_name
		 FROM information_schema.key_column_usage kcu
		 JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name
		 JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
		 WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY'`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForeignKeys(rows)
}

func (d *PostgresDialect) SelectQuery(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", QuoteAll(cols, d.Quote), d.Quote(table))
}

func (d *PostgresDialect) ExistsQuery(table string, keyCols []string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1",
		d.Quote(table), KeyPredicate(keyCols, d.Quote, d.Placeholder))
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), QuoteAll(cols, d.Quote), vals)
}

func (d *PostgresDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Quote(table))
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) Quote(ident string) string {
	return `"` + ident + `"`
}

func (d *PostgresDialect) normalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "int4", "int2":
		return "int"
	case "int8":
		return "bigint"
	case "float4":
		return "float"
	case "float8":
		return "double"
	case "bpchar":
		return "char"
	default:
		return t
	}
}
