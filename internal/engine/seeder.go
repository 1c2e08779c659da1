package engine

import (
	"database/sql"
	"fmt"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

// Seed inserts generated sample rows into each table, in dependency
// order, so a sync run can be rehearsed against disposable databases.
// Foreign-key columns draw from the key values of already-seeded parent
// tables.
func Seed(db *sql.DB, d dialect.Dialect, tables []*schema.Table, count int, onProgress func()) []schema.SeedResult {
	var results []schema.SeedResult
	fkPool := make(map[string][]any)

	for _, table := range tables {
		res := schema.SeedResult{Table: table.Name}

		var insertCols []*schema.Column
		var colNames []string
		for _, c := range table.Columns {
			if !c.IsAutoInc {
				insertCols = append(insertCols, c)
				colNames = append(colNames, c.Name)
			}
		}

		if len(insertCols) == 0 {
			results = append(results, res)
			continue
		}

		query := d.InsertQuery(table.Name, colNames)
		attempts := 0
		for res.Inserted < count && attempts < count*10 {
			attempts++

			values := generateRow(table, insertCols, fkPool, attempts)
			if _, err := db.Exec(query, values...); err != nil {
				res.Errors++
				if res.Errors <= maxLoggedRowErrors {
					fmt.Printf("[seed] Table %s attempt %d: %s\n", table.Name, attempts, truncateErr(err.Error()))
				}
				if res.ErrorMsg == "" {
					res.ErrorMsg = truncateErr(err.Error())
				}
				continue
			}
			res.Inserted++
		}

		results = append(results, res)
		updateFKPool(db, d, table, fkPool)

		if onProgress != nil {
			onProgress()
		}
	}

	return results
}

func generateRow(table *schema.Table, cols []*schema.Column, fkPool map[string][]any, attempt int) []any {
	values := make([]any, len(cols))
	for i, col := range cols {
		values[i] = columnValue(col, table, fkPool, attempt)
	}
	return values
}

// columnValue prefers a parent key from the pool for FK columns; empty
// pools fall back to NULL when allowed, otherwise 1 (parent tables are
// seeded first, so row 1 usually exists).
func columnValue(col *schema.Column, t *schema.Table, pool map[string][]any, attempt int) any {
	for _, fk := range t.ForeignKeys {
		if fk.Column != col.Name {
			continue
		}
		if vals, ok := pool[fk.RefTable]; ok && len(vals) > 0 {
			return vals[attempt%len(vals)]
		}
		if col.IsNullable {
			return nil
		}
		return 1
	}
	return GenerateValue(col, t.Name)
}

// updateFKPool collects the table's key values for use by child tables.
func updateFKPool(db *sql.DB, d dialect.Dialect, table *schema.Table, fkPool map[string][]any) {
	var pk string
	for _, c := range table.Columns {
		if c.IsPK {
			pk = c.Name
			break
		}
	}
	if pk == "" {
		return
	}

	rows, err := db.Query(d.SelectQuery(table.Name, []string{pk}))
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id any
		if err := rows.Scan(&id); err == nil {
			fkPool[table.Name] = append(fkPool[table.Name], id)
		}
	}
}
