package migratecmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"favsaver/internal/photodb"
)

// Column name fragments worth surfacing when exploring an unknown schema
// generation.
var interestingColumnPatterns = []string{
	"FAVORITE", "DESCRIPTION", "FILENAME", "DIRECTORY", "TITLE", "CAPTION", "TRASHED",
}

// NewInspectCmd creates the inspect command, a read-only look at how a
// Photos.sqlite schema is resolved.
func NewInspectCmd() *cobra.Command {
	var showAllTables bool

	cmd := &cobra.Command{
		Use:   "inspect <database>",
		Short: "Show the detected Photos.sqlite schema and the query plan",
		Long: `Inspect a Photos.sqlite database without touching any photos: which schema
generation was detected, which description sources are available, and the exact
query the run command would execute.

Useful when a database from a new iOS version does not migrate as expected.`,
		Example: `  # Show the resolved plan
  favsaver inspect Photos.sqlite

  # Also list every table in the store
  favsaver inspect Photos.sqlite --all-tables`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInspect(stripArgQuotes(args[0]), showAllTables)
		},
	}

	cmd.Flags().BoolVar(&showAllTables, "all-tables", false, "List every table, not just schema-relevant ones")

	return cmd
}

func executeInspect(database string, showAllTables bool) error {
	db, err := photodb.Open(database)
	if err != nil {
		return exitErr(ExitInvalidStore, err)
	}
	defer db.Close()

	tables, err := photodb.TableColumns(db)
	if err != nil {
		return exitErr(ExitInvalidStore, err)
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Database: %s\n", database)
	fmt.Printf("Tables:   %d\n\n", len(names))

	if showAllTables {
		fmt.Println("ALL TABLES")
		fmt.Println(strings.Repeat("-", 60))
		for _, name := range names {
			fmt.Printf("  %s (%d columns)\n", name, len(tables[name]))
		}
		fmt.Println()
	}

	fmt.Println("SCHEMA-RELEVANT COLUMNS")
	fmt.Println(strings.Repeat("-", 60))
	for _, name := range names {
		matching := interestingColumns(tables[name])
		if len(matching) == 0 {
			continue
		}
		fmt.Printf("%s:\n", name)
		for _, col := range matching {
			fmt.Printf("  - %s\n", col)
		}
	}
	fmt.Println()

	plan, err := photodb.ResolvePlan(tables)
	if err != nil {
		fmt.Printf("Schema resolution failed: %v\n", err)
		return exitErr(ExitInvalidStore, err)
	}

	fmt.Println("RESOLVED QUERY PLAN")
	fmt.Println(strings.Repeat("-", 60))
	generation := "older (attributes back-reference the asset)"
	if plan.NewerSchema {
		generation = "newer (asset forward-references its attributes, iOS 18+)"
	}
	fmt.Printf("Schema generation: %s\n", generation)
	if len(plan.Joins) == 0 {
		fmt.Println("Joins: none (bare asset table)")
	} else {
		fmt.Println("Joins:")
		for _, join := range plan.Joins {
			fmt.Printf("  %s\n", join)
		}
	}
	fmt.Printf("Description expression: %s\n\n", plan.DescExpr)
	fmt.Printf("Query:\n  %s\n", plan.Query)

	return nil
}

func interestingColumns(cols []string) []string {
	var matching []string
	for _, col := range cols {
		upper := strings.ToUpper(col)
		for _, pattern := range interestingColumnPatterns {
			if strings.Contains(upper, pattern) {
				matching = append(matching, col)
				break
			}
		}
	}
	return matching
}
