package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) CurrentSchema(db *sql.DB) (string, error) {
	var schema string
	if err := db.QueryRow("SELECT USER FROM DUAL").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	return schema, nil
}

func (d *OracleDialect) ListTables(db *sql.DB, schema string) ([]string, error) {
	// USER_TABLES lists tables owned by the current user; the schema
	// argument is consumed by a dummy clause to keep the call shape uniform.
	rows, err := db.Query(
		`SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *OracleDialect) TableExists(db *sql.DB, schema, table string) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM USER_TABLES WHERE TABLE_NAME = UPPER(:1)`, table).Scan(&n)
	return n > 0, err
}

func (d *OracleDialect) Columns(db *sql.DB, schema, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(
		`SELECT
		   t.COLUMN_NAME,
		   t.DATA_TYPE,
		   COALESCE(t.DATA_PRECISION, t.DATA_LENGTH, 0),
		   t.NULLABLE,
		   CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI' ELSE '' END,
		   CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 1 ELSE 0 END
		 FROM USER_TAB_COLUMNS t
		 LEFT JOIN (
		   SELECT cc.TABLE_NAME, cc.COLUMN_NAME, cc.CONSTRAINT_NAME
		   FROM USER_CONS_COLUMNS cc
		   JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
		   WHERE uc.CONSTRAINT_TYPE = 'P'
		 ) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
		 WHERE t.TABLE_NAME = UPPER(:1)
		 ORDER BY t.COLUMN_ID`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, dType, nullable, cKey string
		var length, identity int
		if err := rows.Scan(&name, &dType, &length, &nullable, &cKey, &identity); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:       name,
			DataType:   strings.ToLower(dType),
			Length:     length,
			IsNullable: nullable == "Y",
			IsPK:       strings.Contains(cKey, "PRI"),
			IsAutoInc:  identity == 1,
		})
	}
	return cols, rows.Err()
}

func (d *OracleDialect) PrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	rows, err := db.Query(
		`SELECT cc.COLUMN_NAME
		 FROM USER_CONS_COLUMNS cc
		 JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
		 WHERE uc.CONSTRAINT_TYPE = 'P' AND cc.TABLE_NAME = UPPER(:1)
		 ORDER BY cc.POSITION`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func (d *OracleDialect) ForeignKeys(db *sql.DB, schema string) ([]ForeignKey, error) {
	rows, err := db.Query(
		`SELECT
		   c.TABLE_NAME,
		   cc.COLUMN_NAME,
		   r.TABLE_NAME,
		   rcc.COLUMN_NAME
		 FROM USER_CONSTRAINTS c
		 JOIN USER_CONS_COLUMNS cc
		   ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME AND c.OWNER = cc.OWNER
		 JOIN USER_CONSTRAINTS r
		   ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME AND c.R_OWNER = r.OWNER
		 JOIN USER_CONS_COLUMNS rcc
		   ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME AND r.OWNER = rcc.OWNER
		   AND cc.POSITION = rcc.POSITION
		 WHERE c.CONSTRAINT_TYPE = 'R' AND :1 IS NOT NULL`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForeignKeys(rows)
}

func (d *OracleDialect) SelectQuery(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
}

func (d *OracleDialect) ExistsQuery(table string, keyCols []string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s AND ROWNUM = 1",
		table, KeyPredicate(keyCols, d.Quote, d.Placeholder))
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), vals)
}

func (d *OracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

// Oracle folds unquoted identifiers to upper case; quoting would force
// exact-case matches, so identifiers pass through unquoted.
func (d *OracleDialect) Quote(ident string) string {
	return ident
}
