package migratecmd

import "strings"

// stripArgQuotes removes surrounding whitespace and double quotes that
// Windows drag-and-drop or copied shell commands tend to leave on paths.
func stripArgQuotes(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}

// cleanupPathArg additionally peels a verbose flag glued onto the end of a
// quoted path argument ("C:\photos -v") and reports whether one was found.
func cleanupPathArg(value string) (string, bool) {
	cleaned := stripArgQuotes(value)
	for _, flag := range []string{" -v", " --verbose"} {
		if strings.HasSuffix(cleaned, flag) {
			return strings.TrimSpace(strings.TrimSuffix(cleaned, flag)), true
		}
	}
	return cleaned, false
}
