// Package hints turns common failures into one actionable line appended to
// the CLI error message as "\n  hint: <text>".
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/fileutil"
)

// ciVars are set by the CI systems a PDF export commonly runs under.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether the process runs in a Docker container.
// Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a Chrome
// launch failure. Containers and CI runners need the sandbox disabled.
func ForBrowserConnect() string {
	var parts []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return format(strings.Join(parts, "; "))
}

// ForTimeout suggests a longer --timeout for slow PDF exports.
func ForTimeout() string {
	return format("for large playbooks, use --timeout flag")
}

// ForConfigNotFound points at --config, and at the user config directory
// candidate when one was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/orchardprogram/") {
			return format(hint + " or create " + p)
		}
	}
	return format(hint)
}

// ForOutputDirectory is returned when an output file cannot be written.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForSourceUnavailable points at the places a playbook path comes from.
func ForSourceUnavailable() string {
	return format("check the path; serve reads server.source from the config or PLAYBOOK_SOURCE")
}

// ForAddressInUse suggests another listen address for the preview server.
func ForAddressInUse() string {
	return format("choose another address with --addr or the PORT variable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
