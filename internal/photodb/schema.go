// Package photodb reads asset metadata out of an iPhone Photos.sqlite
// database. Apple has shipped several incompatible generations of this schema,
// so the package first introspects the tables that are actually present and
// builds a matching query plan before extracting anything.
package photodb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrInvalidStore indicates the database is missing the mandatory ZASSET
// table and cannot be a Photos.sqlite store.
var ErrInvalidStore = errors.New("not a valid Photos.sqlite database (missing ZASSET)")

// Plan is the schema-resolved extraction query for one store. It is built
// once per run and describes which joins connect ZASSET to its description
// sources and in which precedence order those sources are consulted.
type Plan struct {
	// NewerSchema is true when ZASSET carries a ZADDITIONALATTRIBUTES forward
	// reference (iOS 18+); older schemas back-reference the asset instead.
	NewerSchema bool
	// Joins are the LEFT JOIN clauses in application order.
	Joins []string
	// DescExpr is the COALESCE expression resolving the description, already
	// ordered long description > title > legacy caption.
	DescExpr string
	// Query is the final SELECT statement.
	Query string
}

// Open opens the Photos database read-only. The file must already exist;
// sql.Open alone would happily create an empty database.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not found: %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// TableColumns introspects the store: every table name mapped to its column
// names, via sqlite_master and PRAGMA table_info.
func TableColumns(db *sql.DB) (map[string][]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	columns := make(map[string][]string, len(tables))
	for _, table := range tables {
		cols, err := tableInfo(db, table)
		if err != nil {
			return nil, err
		}
		columns[table] = cols
	}
	return columns, nil
}

func tableInfo(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   sql.NullString
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// ResolvePlan selects the query plan compatible with the observed schema.
// Every description source is optional and independently detected; only the
// ZASSET table itself is mandatory.
func ResolvePlan(tables map[string][]string) (*Plan, error) {
	zassetCols, ok := tables["ZASSET"]
	if !ok {
		return nil, ErrInvalidStore
	}

	plan := &Plan{
		NewerSchema: slices.Contains(zassetCols, "ZADDITIONALATTRIBUTES"),
	}

	var descClauses []string

	// First join: ZASSET -> ZADDITIONALASSETATTRIBUTES. The join direction
	// flips between schema generations.
	if aaaCols, ok := tables["ZADDITIONALASSETATTRIBUTES"]; ok {
		if plan.NewerSchema {
			plan.Joins = append(plan.Joins,
				"LEFT JOIN ZADDITIONALASSETATTRIBUTES ON ZASSET.ZADDITIONALATTRIBUTES = ZADDITIONALASSETATTRIBUTES.Z_PK")
		} else {
			plan.Joins = append(plan.Joins,
				"LEFT JOIN ZADDITIONALASSETATTRIBUTES ON ZASSET.Z_PK = ZADDITIONALASSETATTRIBUTES.ZASSET")
		}

		if slices.Contains(aaaCols, "ZTITLE") {
			descClauses = append(descClauses, "NULLIF(ZADDITIONALASSETATTRIBUTES.ZTITLE, '')")
		}

		// Second join: attributes -> ZASSETDESCRIPTION, again with a
		// generation-dependent direction.
		if descCols, ok := tables["ZASSETDESCRIPTION"]; ok {
			if slices.Contains(aaaCols, "ZASSETDESCRIPTION") {
				plan.Joins = append(plan.Joins,
					"LEFT JOIN ZASSETDESCRIPTION ON ZADDITIONALASSETATTRIBUTES.ZASSETDESCRIPTION = ZASSETDESCRIPTION.Z_PK")
			} else if slices.Contains(descCols, "ZASSETATTRIBUTES") {
				plan.Joins = append(plan.Joins,
					"LEFT JOIN ZASSETDESCRIPTION ON ZASSETDESCRIPTION.ZASSETATTRIBUTES = ZADDITIONALASSETATTRIBUTES.Z_PK")
			}

			if slices.Contains(descCols, "ZLONGDESCRIPTION") {
				// Long-form description takes precedence over the title.
				descClauses = append([]string{"NULLIF(ZASSETDESCRIPTION.ZLONGDESCRIPTION, '')"}, descClauses...)
			}
		}
	}

	// Third join: legacy ZEXTENDEDATTRIBUTES caption, lowest precedence.
	if extCols, ok := tables["ZEXTENDEDATTRIBUTES"]; ok && slices.Contains(extCols, "ZCAPTION") {
		plan.Joins = append(plan.Joins,
			"LEFT JOIN ZEXTENDEDATTRIBUTES ON ZASSET.Z_PK = ZEXTENDEDATTRIBUTES.ZASSET")
		descClauses = append(descClauses, "NULLIF(ZEXTENDEDATTRIBUTES.ZCAPTION, '')")
	}

	if len(descClauses) > 0 {
		plan.DescExpr = fmt.Sprintf("COALESCE(%s, '')", strings.Join(descClauses, ", "))
	} else {
		plan.DescExpr = "''"
	}

	plan.Query = fmt.Sprintf(
		"SELECT ZASSET.ZFILENAME, ZASSET.ZDIRECTORY, ZASSET.ZFAVORITE, %s AS DESCRIPTION "+
			"FROM ZASSET %s "+
			"WHERE ZASSET.ZTRASHEDSTATE = 0 AND (ZASSET.ZFAVORITE = 1 OR %s != '')",
		plan.DescExpr, strings.Join(plan.Joins, " "), plan.DescExpr)
	plan.Query = strings.Join(strings.Fields(plan.Query), " ")

	return plan, nil
}
