package photodb

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"favsaver/internal/pathkey"
)

// Meta is the metadata extracted for a single asset.
type Meta struct {
	// RelPath is the collection-relative path with original casing, kept for
	// display purposes.
	RelPath     string
	Favorite    bool
	Description string
}

// ReadMetadata executes the resolved plan and returns one Meta per asset that
// is favorited or carries a description, keyed by normalized path. Rows whose
// keys collide after normalization are counted and skipped (first one wins).
// Any query failure is fatal; no partial result is returned.
func ReadMetadata(db *sql.DB, plan *Plan) (map[string]Meta, int, error) {
	rows, err := db.Query(plan.Query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metadata := make(map[string]Meta)
	duplicates := 0

	for rows.Next() {
		var (
			filename    sql.NullString
			directory   sql.NullString
			favorite    sql.NullInt64
			description sql.NullString
		)
		if err := rows.Scan(&filename, &directory, &favorite, &description); err != nil {
			return nil, 0, fmt.Errorf("failed to scan metadata row: %w", err)
		}

		relative := pathkey.TruncateToCollection(pathkey.Join(directory.String, filename.String))
		key := pathkey.Key(relative)

		if _, exists := metadata[key]; exists {
			duplicates++
			continue
		}

		metadata[key] = Meta{
			RelPath:     relative,
			Favorite:    favorite.Int64 != 0,
			Description: strings.TrimSpace(description.String),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read metadata rows: %w", err)
	}

	slog.Info("Loaded metadata rows",
		"rows", len(metadata),
		"duplicates_skipped", duplicates,
		"description_expression", plan.DescExpr)

	return metadata, duplicates, nil
}
