package dialect

import (
	"database/sql"
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// QuoteAll quotes every identifier in cols with the given quote function
// and returns them comma-joined.
func QuoteAll(cols []string, quoteFunc func(string) string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteFunc(c)
	}
	return strings.Join(quoted, ", ")
}

// KeyPredicate builds "k1 = <ph> AND k2 = <ph> ..." for existence checks.
func KeyPredicate(keyCols []string, quoteFunc func(string) string, placeholderFunc func(int) string) string {
	parts := make([]string, len(keyCols))
	for i, c := range keyCols {
		parts[i] = quoteFunc(c) + " = " + placeholderFunc(i)
	}
	return strings.Join(parts, " AND ")
}

// scanStrings drains a single-column result set.
func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanForeignKeys drains a (table, column, ref_table, ref_column) result set.
func scanForeignKeys(rows *sql.Rows) ([]ForeignKey, error) {
	var out []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Table, &fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, err
		}
		out = append(out, fk)
	}
	return out, rows.Err()
}
