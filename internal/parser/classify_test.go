package parser_test

import (
	"testing"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/parser"
)

// ---------------------------------------------------------------------------
// TestIsLabel - ALL-CAPS heading detection
// ---------------------------------------------------------------------------

func TestIsLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"TARGET MARKETS", true},
		{"VINEYARD/WINERY", true},
		{"SOIL & WATER (AZ):", true},
		{"NOTE: SEE BELOW:", true},
		{"ROI:", false},
		{"SHORT", false},
		{"TOTAL COST", false},
		{"Target Markets", false},
		{"PHASE 2 PLAN", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := parser.IsLabel(tt.line); got != tt.want {
				t.Errorf("IsLabel(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBlockOpener - Special block prefixes
// ---------------------------------------------------------------------------

func TestBlockOpener(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want parser.BlockKind
	}{
		{"Key points to remember", parser.BlockKeyPoints},
		{"Note: bring samples", parser.BlockKeyPoints},
		{"DATA TO CAPTURE", parser.BlockKeyPoints},
		{"Email template: follow-up", parser.BlockEmail},
		{"Subject: Hello", parser.BlockEmail},
		{"HOOK POINT: yields", parser.BlockHookPoint},
		{"Case study: Fresno", parser.BlockExample},
		{"Critical: water first", parser.BlockEmphasis},
		{"Today we visit", parser.BlockNone},
		{"Total acres", parser.BlockNone},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := parser.BlockOpener(tt.line); got != tt.want {
				t.Errorf("BlockOpener(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsSectionStart - Leaving the table of contents
// ---------------------------------------------------------------------------

func TestIsSectionStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"1. Overview", true},
		{"12. Next Steps", true},
		{"1. Overview ........ Page 3", false},
		{"1.1 Background", false},
		{"1. lowercase start", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := parser.IsSectionStart(tt.line); got != tt.want {
				t.Errorf("IsSectionStart(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestImageDirective
// ---------------------------------------------------------------------------

func TestImageDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line         string
		wantPath     string
		wantFullPage bool
		wantOK       bool
	}{
		{"[IMAGE: assets/a.png]", "assets/a.png", false, true},
		{"[image:assets/a.png]", "assets/a.png", false, true},
		{"[FULLPAGE_IMAGE: assets/map.png]", "assets/map.png", true, true},
		{"see [IMAGE: a.png]", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			path, full, ok := parser.ImageDirective(tt.line)
			if path != tt.wantPath || full != tt.wantFullPage || ok != tt.wantOK {
				t.Errorf("ImageDirective(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tt.line, path, full, ok, tt.wantPath, tt.wantFullPage, tt.wantOK)
			}
		})
	}
}
