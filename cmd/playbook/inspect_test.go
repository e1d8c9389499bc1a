package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunOutline - Page outline as JSON
// ---------------------------------------------------------------------------

func TestRunOutline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "p.txt", testPlaybook)
	env, stdout, _ := testEnv(nil)

	if err := runOutline([]string{src}, env); err != nil {
		t.Fatalf("runOutline() error = %v", err)
	}

	var pages []playbook.PageOutline
	if err := json.Unmarshal(stdout.Bytes(), &pages); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, stdout.String())
	}
	if len(pages) != 4 {
		t.Fatalf("got %d pages, want 4", len(pages))
	}
	if pages[1].ID != "toc" || pages[1].Page != 2 {
		t.Errorf("pages[1] = %+v", pages[1])
	}
	if pages[3].Title != "2. NEXT STEPS" || pages[3].Page != 4 {
		t.Errorf("pages[3] = %+v", pages[3])
	}
}

func TestRunOutline_ConfigExclusions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "p.txt", testPlaybook)

	cfg := config.DefaultConfig()
	cfg.Rules.Exclusions = append(cfg.Rules.Exclusions, "next steps")
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfgPath := writeFile(t, dir, "rules.yaml", string(data))

	env, stdout, _ := testEnv(nil)
	if err := runOutline([]string{src, "--config", cfgPath}, env); err != nil {
		t.Fatalf("runOutline() error = %v", err)
	}

	var pages []playbook.PageOutline
	if err := json.Unmarshal(stdout.Bytes(), &pages); err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Errorf("got %d pages, want 3 after excluding a section", len(pages))
	}
}

func TestRunOutline_Errors(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	if err := runOutline([]string{"a.txt", "b.txt"}, env); exitCodeFor(err) != ExitUsage {
		t.Errorf("two files: error = %v, want usage error", err)
	}
	if err := runOutline([]string{filepath.Join(t.TempDir(), "none.txt")}, env); exitCodeFor(err) != ExitIO {
		t.Errorf("missing file: error = %v, want I/O error", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunRules - Effective configuration dump
// ---------------------------------------------------------------------------

func TestRunRules(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(map[string]string{"PLAYBOOK_SOURCE": "/srv/orchard.txt"})
	if err := runRules(nil, env); err != nil {
		t.Fatalf("runRules() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"rules:", "exclusions:", "boldTerms:", "Pomona", "source: /srv/orchard.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// The dump is a loadable config file.
	path := writeFile(t, t.TempDir(), "dump.yaml", out)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(dump) error = %v", err)
	}
	if len(cfg.Rules.Images) != len(config.DefaultRules().Images) {
		t.Errorf("image rules = %d, want %d", len(cfg.Rules.Images), len(config.DefaultRules().Images))
	}
}

// ---------------------------------------------------------------------------
// TestRunServe - Preview server startup
// ---------------------------------------------------------------------------

func TestRunServe_StartsAndStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "p.txt", testPlaybook)
	env, stdout, stderr := testEnv(nil)

	// A canceled context shuts the server down right after it starts.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runServe(ctx, []string{src, "--addr", "127.0.0.1:0", "--no-pdf", "--assets-dir", filepath.Join(dir, "nope")}, env)
	if err != nil {
		t.Fatalf("runServe() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Serving "+src+" at http://127.0.0.1:") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "assets directory not found") {
		t.Errorf("missing assets warning: %q", stderr.String())
	}
}

func TestRunServe_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "p.txt", testPlaybook)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing source", []string{filepath.Join(dir, "none.txt")}, ExitIO},
		{"two sources", []string{src, src}, ExitUsage},
		{"bad log format", []string{src, "--log-format", "xml"}, ExitUsage},
		{"bad margin", []string{src, "--margin", "9"}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(nil)
			err := runServe(context.Background(), tt.args, env)
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("error = %v (exit %d), want exit %d", err, got, tt.wantCode)
			}
		})
	}
}
