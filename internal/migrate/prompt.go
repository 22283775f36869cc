package migrate

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"favsaver/internal/exif"
	"favsaver/internal/photodb"
)

// ConsoleOracle returns an Oracle that asks the user on the console. Invalid
// input re-prompts; a closed input stream keeps the existing metadata.
func ConsoleOracle(in io.Reader, out io.Writer) Oracle {
	reader := bufio.NewReader(in)

	return func(relPath string, existing exif.Data, meta photodb.Meta) Decision {
		fmt.Fprintf(out, "\nConflict detected for %s:\n", relPath)
		fmt.Fprintf(out, "  Existing -> rating=%s, description=%s\n",
			existingRating(existing.Rating), existingDescription(existing.Description))

		incomingRating := "<unchanged>"
		if meta.Favorite {
			incomingRating = fmt.Sprintf("%d (favorite)", FavoriteRating)
		}
		incomingDesc := "<empty>"
		if meta.Description != "" {
			incomingDesc = fmt.Sprintf("%q", meta.Description)
		}
		fmt.Fprintf(out, "  Incoming -> rating=%s, description=%s\n", incomingRating, incomingDesc)

		for {
			fmt.Fprint(out, "Overwrite (y), keep existing (n), or skip all future conflicts (s)? ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return DecisionKeep
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y":
				return DecisionOverwrite
			case "n":
				return DecisionKeep
			case "s":
				return DecisionSkipAll
			}
			fmt.Fprintln(out, "Please enter 'y', 'n', or 's'.")
		}
	}
}

func existingRating(rating *int) string {
	if rating == nil {
		return "<none>"
	}
	return fmt.Sprintf("%d", *rating)
}

func existingDescription(description *string) string {
	if description == nil || *description == "" {
		return "<empty>"
	}
	return fmt.Sprintf("%q", *description)
}
