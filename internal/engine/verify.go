package engine

import (
	"database/sql"
	"fmt"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
)

// CountPair is one table's source-vs-target row count for manual comparison.
type CountPair struct {
	Table  string
	Source int64
	Target int64
	Status string
}

// VerifyCounts re-queries the row counts of the given tables on both
// sides. Count failures (e.g. table missing on one side) are reported
// in the status instead of aborting the pass.
func VerifyCounts(source, target *sql.DB, sd, td dialect.Dialect, tables []string) []CountPair {
	pairs := make([]CountPair, 0, len(tables))
	for _, table := range tables {
		pair := CountPair{Table: table, Status: "MATCH"}

		if err := source.QueryRow(sd.CountQuery(table)).Scan(&pair.Source); err != nil {
			pair.Source = -1
			pair.Status = fmt.Sprintf("SOURCE_FAIL: %v", err)
		}
		if err := target.QueryRow(td.CountQuery(table)).Scan(&pair.Target); err != nil {
			pair.Target = -1
			pair.Status = fmt.Sprintf("TARGET_FAIL: %v", err)
		}
		if pair.Status == "MATCH" && pair.Source != pair.Target {
			pair.Status = fmt.Sprintf("DIFF: %+d", pair.Target-pair.Source)
		}

		pairs = append(pairs, pair)
	}
	return pairs
}
