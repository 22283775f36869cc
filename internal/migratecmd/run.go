package migratecmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"favsaver/internal/exif"
	"favsaver/internal/logging"
	"favsaver/internal/match"
	"favsaver/internal/migrate"
	"favsaver/internal/photodb"
	"favsaver/internal/report"
	"favsaver/internal/scan"
)

// NewRunCmd creates the run command, the full migration pass.
func NewRunCmd() *cobra.Command {
	var dryRun bool
	var overwriteOriginal bool
	var verbose bool
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "run <database> <photo-dir>",
		Short: "Migrate favorites and descriptions from Photos.sqlite into the photo files",
		Long: `Run the full migration: read favorites and descriptions from Photos.sqlite,
scan the copied photo library for its 100APPLE-style collection folders, match
database rows to files, and write missing ratings and descriptions via exiftool.

Files whose embedded metadata already differs trigger an interactive prompt;
answering 's' skips every remaining conflict in the run.`,
		Example: `  # Dry run first, see what would change
  favsaver run Photos.sqlite ~/phone-backup --dry-run --verbose

  # Write metadata, keeping exiftool's *_original backups
  favsaver run Photos.sqlite ~/phone-backup

  # Write in place and save a machine-readable run summary
  favsaver run Photos.sqlite ~/phone-backup --overwrite-original --summary run.yaml`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			database := stripArgQuotes(args[0])
			photoDir, verboseFromPath := cleanupPathArg(args[1])
			if verboseFromPath {
				verbose = true
			}

			return executeRun(database, photoDir, runOptions{
				DryRun:            dryRun,
				OverwriteOriginal: overwriteOriginal,
				Verbose:           verbose,
				SummaryPath:       summaryPath,
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show actions without writing EXIF data")
	cmd.Flags().BoolVar(&overwriteOriginal, "overwrite-original", false, "Write files in place instead of keeping *_original backups")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this file")

	return cmd
}

type runOptions struct {
	DryRun            bool
	OverwriteOriginal bool
	Verbose           bool
	SummaryPath       string
}

func executeRun(database, photoDir string, opts runOptions) error {
	start := time.Now()
	rep := report.New(opts.Verbose)

	rep.Phase("Checking dependencies")
	exiftoolPath, exiftoolVersion, err := exif.Check(os.Getenv("EXIFTOOL_PATH"))
	if err != nil {
		rep.Error("exiftool not found. Install it from https://exiftool.org/ before running.")
		return exitErr(ExitExiftoolMissing, err)
	}

	logPath, closeLog, err := logging.Setup("logs", opts.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("=== Migration started ===",
		"log_file", logPath,
		"invocation", strings.Join(os.Args, " "),
		"go_version", runtime.Version(),
		"exiftool_path", exiftoolPath,
		"exiftool_version", exiftoolVersion)

	rep.Phase("Validating database")
	db, err := photodb.Open(database)
	if err != nil {
		slog.Error("Failed to open database", "database", database, "error", err)
		rep.Error("%v", err)
		return exitErr(ExitInvalidStore, err)
	}
	defer db.Close()

	tables, err := photodb.TableColumns(db)
	if err != nil {
		slog.Error("Failed to introspect database", "database", database, "error", err)
		rep.Error("Failed to open database. See log for details.")
		return exitErr(ExitInvalidStore, err)
	}

	plan, err := photodb.ResolvePlan(tables)
	if err != nil {
		slog.Error("Schema resolution failed", "database", database, "error", err)
		rep.Error("%v: %s", err, database)
		return exitErr(ExitInvalidStore, err)
	}
	slog.Info("Resolved query plan", "newer_schema", plan.NewerSchema, "joins", len(plan.Joins))

	rep.Phase("Reading metadata from Photos.sqlite")
	metadata, duplicateRecords, err := photodb.ReadMetadata(db, plan)
	if err != nil {
		slog.Error("Failed to read metadata", "database", database, "error", err)
		rep.Error("Failed to read metadata from the database. See log for details.")
		return exitErr(ExitGeneralError, err)
	}
	if len(metadata) == 0 {
		rep.Warn("Database contains no favorites or descriptions. Nothing to migrate.")
		slog.Warn("Database query returned zero rows containing favorites/descriptions")
	}

	rep.Phase("Scanning photo library")
	scanResult, err := scan.PhotoFiles(photoDir)
	if err != nil {
		slog.Error("Photo library scan failed", "root", photoDir, "error", err)
		rep.Error("%v", err)
		return exitErr(ExitGeneralError, err)
	}
	if !scanResult.CollectionSeen {
		msg := fmt.Sprintf("No folders matching */[0-9]+APPLE were found under %s", photoDir)
		slog.Warn(msg)
		rep.Warn("%s", msg)
	}
	rep.Info("Discovered %d supported photo file(s)", len(scanResult.Files))
	if len(scanResult.Files) == 0 {
		err := fmt.Errorf("no supported photo files found under %s", photoDir)
		slog.Error("No supported photo files found", "root", photoDir)
		rep.Error("No supported photo files found under %s", photoDir)
		return exitErr(ExitNoPhotos, err)
	}

	rep.Phase("Matching metadata to files")
	pairs, unmatched := match.Join(metadata, scanResult.Files)
	if unmatched > 0 {
		rep.Warn("%d metadata record(s) did not have matching files on disk.", unmatched)
	}
	rep.Info("Matched %d photo(s)", len(pairs))

	var stats migrate.Stats
	if len(pairs) == 0 {
		rep.Info("No photo files matched the database entries. Exiting.")
		slog.Warn("No matches between database metadata and scanned files")
	} else {
		rep.Phase(fmt.Sprintf("Migrating metadata for %d photo(s)", len(pairs)))
		tool, err := exif.New(exif.Options{
			BinaryPath:        os.Getenv("EXIFTOOL_PATH"),
			OverwriteOriginal: opts.OverwriteOriginal,
		})
		if err != nil {
			slog.Error("Failed to start exiftool", "error", err)
			rep.Error("Failed to start exiftool. See log for details.")
			return exitErr(ExitExiftoolMissing, err)
		}
		defer tool.Close()

		session := migrate.NewSession(tool, migrate.ConsoleOracle(os.Stdin, os.Stdout), opts.DryRun, rep)
		stats = session.Run(pairs)
	}

	duration := time.Since(start)
	slog.Info("=== Migration finished ===",
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"runtime_seconds", fmt.Sprintf("%.2f", duration.Seconds()))

	rep.Phase("Migration complete")
	rep.Info("Processed: %d | Skipped: %d | Errors: %d", stats.Processed, stats.Skipped, stats.Errors)

	if opts.SummaryPath != "" {
		summary := report.Summary{
			Database:          database,
			PhotoDir:          photoDir,
			DryRun:            opts.DryRun,
			MetadataRecords:   len(metadata),
			DuplicateRecords:  duplicateRecords,
			FilesScanned:      len(scanResult.Files),
			DuplicateFiles:    scanResult.Duplicates,
			Matched:           len(pairs),
			UnmatchedMetadata: unmatched,
			Processed:         stats.Processed,
			Skipped:           stats.Skipped,
			Errors:            stats.Errors,
			RuntimeSeconds:    duration.Seconds(),
		}
		if err := report.WriteSummary(opts.SummaryPath, summary); err != nil {
			slog.Error("Failed to write run summary", "path", opts.SummaryPath, "error", err)
			rep.Warn("Failed to write run summary: %v", err)
		}
	}

	if stats.Errors > 0 {
		return exitErr(ExitGeneralError, errors.New("migration finished with errors"))
	}
	return nil
}
