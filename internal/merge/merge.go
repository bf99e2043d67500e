// Package merge combines per-model scoring TSVs into one wide table
// keyed by variant identity, using an in-memory DuckDB database.
package merge

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// indexColumns is the composite join key shared by all scoring outputs.
var indexColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT"}

// Tables outer-joins the input TSVs on the five identity columns and
// writes the combined table. Keys present in only some inputs are
// retained, with empty cells for the tables lacking them. Output rows
// are ordered by the composite key.
func Tables(inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input table is required")
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	// Ingest each input. all_varchar keeps cell text byte-identical
	// through the join.
	for i, path := range inputs {
		stmt := fmt.Sprintf(
			"CREATE TABLE t%d AS SELECT * FROM read_csv(%s, delim = '\t', header = true, all_varchar = true)",
			i, quoteLiteral(path))
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("read input table %s: %w", path, err)
		}
	}

	merged := "t0"
	for i := 1; i < len(inputs); i++ {
		next := fmt.Sprintf("m%d", i)
		stmt := fmt.Sprintf("CREATE TABLE %s AS %s", next, joinQuery(merged, fmt.Sprintf("t%d", i)))
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("join input table %s: %w", inputs[i], err)
		}
		merged = next
	}

	copyStmt := fmt.Sprintf(
		"COPY (SELECT * FROM %s ORDER BY %s) TO %s (FORMAT CSV, DELIMITER '\t', HEADER)",
		merged, strings.Join(quoteIdents(indexColumns), ", "), quoteLiteral(output))
	if _, err := db.Exec(copyStmt); err != nil {
		return fmt.Errorf("write merged table %s: %w", output, err)
	}

	return nil
}

// joinQuery builds a full outer join of two tables on the composite
// key, coalescing the key columns so keys from either side survive.
func joinQuery(left, right string) string {
	keys := quoteIdents(indexColumns)

	selects := make([]string, 0, len(keys)+2)
	conds := make([]string, 0, len(keys))
	for _, k := range keys {
		selects = append(selects, fmt.Sprintf("COALESCE(l.%s, r.%s) AS %s", k, k, k))
		conds = append(conds, fmt.Sprintf("l.%s = r.%s", k, k))
	}
	exclude := strings.Join(keys, ", ")
	selects = append(selects,
		fmt.Sprintf("l.* EXCLUDE (%s)", exclude),
		fmt.Sprintf("r.* EXCLUDE (%s)", exclude))

	return fmt.Sprintf("SELECT %s FROM %s l FULL JOIN %s r ON %s",
		strings.Join(selects, ", "), left, right, strings.Join(conds, " AND "))
}

// quoteIdents double-quotes column names for SQL ("#CHROM" needs it).
func quoteIdents(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + strings.ReplaceAll(n, `"`, `""`) + `"`
	}
	return quoted
}

// quoteLiteral single-quotes a string literal for SQL.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
