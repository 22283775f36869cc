package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"favsaver/internal/migratecmd"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favsaver",
		Short: "Migrate iPhone photo favorites and descriptions to EXIF metadata",
		Long: `Favsaver reconciles a copied iPhone photo library against its Photos.sqlite
database and writes favorites (as star ratings) and descriptions into the image
files themselves via exiftool.

It matches database rows to files on disk through the DCIM collection folders
(100APPLE, 101APPLE, ...), detects metadata already embedded in each file, and
only writes what is missing — asking before overwriting anything that differs.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(migratecmd.NewRunCmd())
	cmd.AddCommand(migratecmd.NewInspectCmd())

	return cmd
}
