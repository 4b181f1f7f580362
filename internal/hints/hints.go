// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForPandocMissing returns hints for a pandoc executable that could not
// be found.
func ForPandocMissing() string {
	return formatHints([]string{
		"install pandoc (https://pandoc.org/installing.html)",
		"or point --pandoc at the executable",
	})
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-html2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-html2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEmptyInputDir returns hints when a batch directory holds no sources.
func ForEmptyInputDir() string {
	return format("expected .html, .xhtml or .htm files directly in the directory")
}

// ForSplitPattern returns hints for an invalid split pattern.
func ForSplitPattern() string {
	return format(`pattern is a Go regexp matched per line, e.g. '^# (Chapter .*)$'`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
