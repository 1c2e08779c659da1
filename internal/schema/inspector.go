package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
)

// Inspect reads the full table layout of one database: tables, ordered
// columns, and foreign keys. Tables are returned in dependency order.
func Inspect(db *sql.DB, d dialect.Dialect, schemaName string) ([]*Table, error) {
	names, err := d.ListTables(db, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	// Map with normalized keys for case-insensitive lookups (Oracle folds
	// identifiers to upper case).
	tableMap := make(map[string]*Table)
	var tables []*Table
	for _, name := range names {
		t := &Table{Name: name, Dependencies: []string{}}
		tableMap[strings.ToUpper(name)] = t
		tables = append(tables, t)
	}

	for _, t := range tables {
		infos, err := d.Columns(db, schemaName, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", t.Name, err)
		}
		for _, ci := range infos {
			t.Columns = append(t.Columns, &Column{
				Name:       ci.Name,
				DataType:   ci.DataType,
				Length:     ci.Length,
				IsNullable: ci.IsNullable,
				IsPK:       ci.IsPK,
				IsAutoInc:  ci.IsAutoInc,
				Meaning:    AnalyzeMeaning(ci.Name),
			})
		}
	}

	fks, err := d.ForeignKeys(db, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign keys: %w", err)
	}
	for _, fk := range fks {
		if fk.Table == fk.RefTable {
			continue // self references do not affect ordering
		}
		t, ok := tableMap[strings.ToUpper(fk.Table)]
		if !ok {
			continue
		}
		ref, ok := tableMap[strings.ToUpper(fk.RefTable)]
		if !ok {
			continue // reference to a table outside this schema
		}
		t.Dependencies = append(t.Dependencies, ref.Name)
		t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
			Column:    fk.Column,
			RefTable:  ref.Name,
			RefColumn: fk.RefColumn,
		})
	}

	return SortTablesByDependency(tables), nil
}
