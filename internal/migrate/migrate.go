// Package migrate applies matched metadata to photo files, one pair at a
// time. It reads what is already embedded in each file, decides whether a
// change is needed, classifies conflicts, and applies the resolution policy.
package migrate

import (
	"fmt"
	"log/slog"

	"favsaver/internal/exif"
	"favsaver/internal/match"
	"favsaver/internal/photodb"
	"favsaver/internal/report"
)

// FavoriteRating is the star rating a favorited photo is upgraded to. Ratings
// below it are considered in need of an upgrade; an embedded rating that is
// present but different marks a conflict.
const FavoriteRating = 4

// Decision is a conflict resolution chosen by the oracle.
type Decision int

const (
	// DecisionOverwrite applies the incoming change despite the conflict.
	DecisionOverwrite Decision = iota
	// DecisionKeep leaves the file untouched.
	DecisionKeep
	// DecisionSkipAll keeps the file untouched and suppresses the oracle for
	// every later conflict in the same run.
	DecisionSkipAll
)

// Oracle resolves a single conflicting pair. It is consulted at most once per
// conflict and never again after returning DecisionSkipAll.
type Oracle func(relPath string, existing exif.Data, meta photodb.Meta) Decision

// MetadataTool is the embedded-metadata collaborator. exif.Tool implements it;
// tests substitute fakes.
type MetadataTool interface {
	Read(path string) (exif.Data, error)
	Write(path string, rating *int, description *string) error
}

// Stats are the running counters for one migration.
type Stats struct {
	Processed int
	Skipped   int
	Errors    int
}

// Session processes matched pairs sequentially. The sticky skip-all flag and
// the counters live here; nothing else carries state across pairs.
type Session struct {
	tool    MetadataTool
	ask     Oracle
	dryRun  bool
	rep     *report.Reporter
	skipAll bool
	stats   Stats
}

// NewSession creates a migration session.
func NewSession(tool MetadataTool, ask Oracle, dryRun bool, rep *report.Reporter) *Session {
	return &Session{tool: tool, ask: ask, dryRun: dryRun, rep: rep}
}

// Run processes every pair in order. Per-pair failures are counted and the
// run continues; only the final counters decide the overall outcome.
func (s *Session) Run(pairs []match.Pair) Stats {
	for _, pair := range pairs {
		s.processPair(pair)
	}
	return s.stats
}

func (s *Session) processPair(pair match.Pair) {
	rel := pair.File.RelPath
	meta := pair.Meta

	s.rep.Detail("Processing %s", rel)

	// Defensive re-check of the extractor's inclusion filter.
	if !meta.Favorite && meta.Description == "" {
		s.stats.Skipped++
		s.rep.Detail("Skipping %s - no metadata present in database.", rel)
		return
	}

	existing, err := s.tool.Read(pair.File.FullPath)
	if err != nil {
		slog.Error("Failed to read embedded metadata", "file", rel, "error", err)
		s.rep.Error("Failed to read EXIF for %s. See log for details.", rel)
		s.stats.Errors++
		return
	}

	needsRating := meta.Favorite && (existing.Rating == nil || *existing.Rating < FavoriteRating)
	existingDesc := ""
	if existing.Description != nil {
		existingDesc = *existing.Description
	}
	needsDescription := meta.Description != "" && meta.Description != existingDesc

	if !needsRating && !needsDescription {
		slog.Info("Skipping file - no EXIF changes required", "file", rel)
		s.rep.Detail("Skipping %s - already up to date.", rel)
		s.stats.Skipped++
		return
	}

	if hasConflict(existing, needsRating, needsDescription) {
		if s.skipAll {
			s.stats.Skipped++
			s.rep.Detail("Skipping %s due to 'skip all' selection.", rel)
			return
		}

		switch s.ask(rel, existing, meta) {
		case DecisionKeep:
			s.stats.Skipped++
			s.rep.Detail("Keeping existing metadata for %s.", rel)
			return
		case DecisionSkipAll:
			s.skipAll = true
			s.stats.Skipped++
			s.rep.Detail("Skipping all remaining conflicts.")
			return
		case DecisionOverwrite:
			// fall through to the write
		}
	}

	var rating *int
	if needsRating {
		r := FavoriteRating
		rating = &r
	}
	var description *string
	if needsDescription {
		d := meta.Description
		description = &d
	}

	if s.dryRun {
		s.rep.Detail("[DRY RUN] Would update %s: rating=%s, description=%s",
			rel, formatRating(rating), formatDescription(description))
		slog.Info("Dry run - would update file",
			"file", rel, "rating", formatRating(rating), "description", formatDescription(description))
		s.stats.Processed++
		return
	}

	if err := s.tool.Write(pair.File.FullPath, rating, description); err != nil {
		slog.Error("Failed to write embedded metadata", "file", rel, "error", err)
		s.rep.Error("Failed to update %s. See log for details.", rel)
		s.stats.Errors++
		return
	}

	s.rep.Detail("Updated %s", rel)
	s.stats.Processed++
}

// hasConflict reports whether applying the needed changes would overwrite a
// non-default value already embedded in the file.
func hasConflict(existing exif.Data, needsRating, needsDescription bool) bool {
	ratingConflict := needsRating && existing.Rating != nil && *existing.Rating != FavoriteRating
	descriptionConflict := needsDescription && existing.Description != nil && *existing.Description != ""
	return ratingConflict || descriptionConflict
}

func formatRating(rating *int) string {
	if rating == nil {
		return "<unchanged>"
	}
	return fmt.Sprintf("%d", *rating)
}

func formatDescription(description *string) string {
	if description == nil {
		return "<unchanged>"
	}
	return fmt.Sprintf("%q", *description)
}
