package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config, server
//   and CLI, plus wrapped errors to verify the errors.Is chain.
// - hintFor: we test which failures carry a hint, not the hint wording.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/server"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", playbook.ErrBrowserConnect, ExitBrowser},
		{"page create", playbook.ErrPageCreate, ExitBrowser},
		{"page load", playbook.ErrPageLoad, ExitBrowser},
		{"pdf generation", playbook.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", playbook.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"source unavailable", playbook.ErrSourceUnavailable, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"listen", server.ErrListen, ExitIO},
		{"wrapped source", fmt.Errorf("%w: missing.txt", playbook.ErrSourceUnavailable), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid rule", config.ErrInvalidRule, ExitUsage},
		{"empty source", playbook.ErrEmptySource, ExitUsage},
		{"invalid page size", playbook.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", playbook.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", playbook.ErrInvalidMargin, ExitUsage},
		{"invalid rules", playbook.ErrInvalidRules, ExitUsage},
		{"invalid template", playbook.ErrInvalidTemplate, ExitUsage},
		{"invalid asset path", playbook.ErrInvalidAssetPath, ExitUsage},
		{"style not found", playbook.ErrStyleNotFound, ExitUsage},
		{"template set not found", playbook.ErrTemplateSetNotFound, ExitUsage},
		{"incomplete template set", playbook.ErrIncompleteTemplateSet, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"deadline", context.DeadlineExceeded, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"timeout", fmt.Errorf("x: %w", context.DeadlineExceeded), true},
		{"config not found", fmt.Errorf("%w: team.yaml", config.ErrConfigNotFound), true},
		{"source unavailable", playbook.ErrSourceUnavailable, true},
		{"no input", ErrNoInput, true},
		{"write output", ErrWriteOutput, true},
		{"listen", server.ErrListen, true},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := hintFor(tt.err, "team")
			if tt.wantHint && !strings.Contains(hint, "hint:") {
				t.Errorf("hintFor(%v) = %q, want a hint", tt.err, hint)
			}
			if !tt.wantHint && hint != "" {
				t.Errorf("hintFor(%v) = %q, want none", tt.err, hint)
			}
		})
	}
}
