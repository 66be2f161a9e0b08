// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	gamebook "github.com/alnah/go-gamebook"
	"github.com/alnah/go-gamebook/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	// Detect CI environment
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// Suggest ROD_NO_SANDBOX for container/CI environments
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	// Suggest ROD_BROWSER_BIN if not set
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "use --format html to skip the browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the limit for slow renders.
func ForTimeout() string {
	return format("for large gamebooks, raise --timeout")
}

// ForConfigNotFound suggests --config and, when one of searchedPaths lives
// under the user config directory, creating that file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains /go-gamebook/) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-gamebook/") {
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

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// manuscriptHints maps a diagnostic kind to advice on fixing the manuscript.
var manuscriptHints = map[string]string{
	gamebook.KindDuplicateLabel:        "every paragraph label must be unique; the terminal label takes the last number",
	gamebook.KindEmptyBody:             "write at least one line under each paragraph marker",
	gamebook.KindPinningOrder:          "start with a pinned paragraph (doubled sigil) and pin the terminal paragraph",
	gamebook.KindNonContiguousLabeling: "pinned numbers must lie between the first and the last paragraph number",
	gamebook.KindUnresolvedLink:        "a link must name the label of a paragraph",
	gamebook.KindUndefinedMacro:        "define the macro on a line of its own anywhere in the manuscript, e.g. *NAME:text",
	gamebook.KindEmptyManuscript:       "a paragraph starts with the paragraph sigil followed by its label",
}

// ForManuscript returns advice for a manuscript diagnostic kind, or "" when
// there is none.
func ForManuscript(kind string) string {
	return format(manuscriptHints[kind])
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
