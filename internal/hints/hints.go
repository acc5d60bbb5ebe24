// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
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

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the per-file render timeout.
func ForTimeout() string {
	return format("for heavy pages, raise render.timeout or HTML2PDF_RENDER_TIMEOUT")
}

// ForConfigNotFound returns a hint for a missing config file.
func ForConfigNotFound(path string) string {
	if path == "" {
		return format("use --config /path/to/html2pdf.yaml")
	}
	return format("check that " + path + " exists or drop --config to use defaults")
}

// ForStorageRoot returns a hint for upload/output root creation errors.
func ForStorageRoot(dir string) string {
	return format("check that the parent of " + dir + " exists and is writable")
}

// ForAddressInUse returns a hint when the listen address is taken.
func ForAddressInUse(addr string) string {
	return format(addr + " is in use; pass --addr or set HTML2PDF_ADDR")
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
