package engine

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

// maxLoggedRowErrors caps how many insert failures are printed per table;
// everything past that is only counted.
const maxLoggedRowErrors = 3

// Syncer copies rows that exist in the source database but not, by key,
// in the target. Tables are processed one at a time, rows one at a time;
// errors degrade to counters so a bad row or table never blocks the rest.
type Syncer struct {
	Source *sql.DB
	Target *sql.DB

	SourceDialect dialect.Dialect
	TargetDialect dialect.Dialect

	SourceSchema string
	TargetSchema string

	// Keys overrides the identity columns per table. Tables without an
	// entry fall back to the target's primary key.
	Keys map[string][]string

	// MaxRowErrors aborts a table after this many insert failures.
	// Zero means no cap.
	MaxRowErrors int
}

// Run syncs the given tables in order and returns one result per table.
// onProgress, if set, is called after each finished table.
func (s *Syncer) Run(tables []string, onProgress func()) []schema.SyncResult {
	results := make([]schema.SyncResult, 0, len(tables))
	for _, table := range tables {
		results = append(results, s.syncTable(table))
		if onProgress != nil {
			onProgress()
		}
	}
	return results
}

// Totals accumulates the per-table counters.
func Totals(results []schema.SyncResult) (imported, skipped, errCount int) {
	for _, r := range results {
		imported += r.Imported
		skipped += r.Skipped
		errCount += r.Errors
	}
	return
}

func (s *Syncer) syncTable(name string) schema.SyncResult {
	res := schema.SyncResult{Table: name, Status: schema.StatusSynced}

	srcOK, err := s.SourceDialect.TableExists(s.Source, s.SourceSchema, name)
	if err != nil {
		return s.fail(res, fmt.Errorf("source existence check: %w", err))
	}
	if !srcOK {
		res.Status = schema.StatusNotInSource
		return res
	}
	dstOK, err := s.TargetDialect.TableExists(s.Target, s.TargetSchema, name)
	if err != nil {
		return s.fail(res, fmt.Errorf("target existence check: %w", err))
	}
	if !dstOK {
		res.Status = schema.StatusNotInTarget
		return res
	}

	srcCols, err := s.SourceDialect.Columns(s.Source, s.SourceSchema, name)
	if err != nil {
		return s.fail(res, fmt.Errorf("source columns: %w", err))
	}
	dstCols, err := s.TargetDialect.Columns(s.Target, s.TargetSchema, name)
	if err != nil {
		return s.fail(res, fmt.Errorf("target columns: %w", err))
	}

	common := schema.CommonColumns(columnNames(srcCols), columnNames(dstCols))
	if len(common) == 0 {
		res.Status = schema.StatusNoCommonColumns
		return res
	}

	key, err := s.resolveKey(name, common)
	if err != nil {
		return s.fail(res, err)
	}
	keyIdx := indexOf(common, key)

	existsQuery := s.TargetDialect.ExistsQuery(name, key)
	insertQuery := s.TargetDialect.InsertQuery(name, common)

	// Row order is whatever the source returns; convergence across runs
	// comes from the skip-on-existing-key check, not from ordering.
	rows, err := s.Source.Query(s.SourceDialect.SelectQuery(name, common))
	if err != nil {
		return s.fail(res, fmt.Errorf("source select: %w", err))
	}
	defer rows.Close()

	rowCount := 0
	for rows.Next() {
		rowCount++

		values := make([]any, len(common))
		ptrs := make([]any, len(common))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return s.fail(res, fmt.Errorf("source scan: %w", err))
		}

		keyVals := make([]any, len(keyIdx))
		for i, idx := range keyIdx {
			keyVals[i] = values[idx]
		}

		var one int
		err := s.Target.QueryRow(existsQuery, keyVals...).Scan(&one)
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, sql.ErrNoRows):
			s.rowError(&res, name, err)
		default:
			if _, err := s.Target.Exec(insertQuery, values...); err != nil {
				s.rowError(&res, name, err)
			} else {
				res.Imported++
			}
		}

		if s.MaxRowErrors > 0 && res.Errors >= s.MaxRowErrors {
			res.Status = schema.StatusFailed
			res.ErrorMsg = fmt.Sprintf("aborted after %d row errors", res.Errors)
			return res
		}
	}
	if err := rows.Err(); err != nil {
		return s.fail(res, fmt.Errorf("source iteration: %w", err))
	}

	if rowCount == 0 {
		res.Status = schema.StatusEmptySource
	}
	return res
}

// resolveKey picks the identity columns for a table: explicit override,
// then target primary key, then source primary key, then the id/first
// column fallback.
func (s *Syncer) resolveKey(table string, common []string) ([]string, error) {
	targetPK, err := s.TargetDialect.PrimaryKey(s.Target, s.TargetSchema, table)
	if err != nil {
		return nil, fmt.Errorf("target primary key: %w", err)
	}
	sourcePK, err := s.SourceDialect.PrimaryKey(s.Source, s.SourceSchema, table)
	if err != nil {
		return nil, fmt.Errorf("source primary key: %w", err)
	}
	return schema.ResolveKey(s.Keys[table], targetPK, sourcePK, common), nil
}

// fail marks a whole-table failure: one error, partial counters kept,
// processing continues with the next table.
func (s *Syncer) fail(res schema.SyncResult, err error) schema.SyncResult {
	res.Status = schema.StatusFailed
	res.Errors++
	res.ErrorMsg = truncateErr(err.Error())
	fmt.Printf("[sync] Table %s failed: %v\n", res.Table, err)
	return res
}

func (s *Syncer) rowError(res *schema.SyncResult, table string, err error) {
	res.Errors++
	if res.Errors <= maxLoggedRowErrors {
		fmt.Printf("[sync] Table %s row error %d: %s\n", table, res.Errors, truncateErr(err.Error()))
	}
	if res.ErrorMsg == "" {
		res.ErrorMsg = truncateErr(err.Error())
	}
}

func columnNames(cols []dialect.ColumnInfo) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func indexOf(cols, subsetCols []string) []int {
	idx := make([]int, 0, len(subsetCols))
	for _, k := range subsetCols {
		for i, c := range cols {
			if c == k {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

func truncateErr(s string) string {
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
