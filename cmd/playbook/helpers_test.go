package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
)

const testPlaybook = `SOIL SEED & WATER

TABLE OF CONTENTS

1. OVERVIEW
==========
Intro paragraph.

1.1 Background
Founded in Arizona.

2. NEXT STEPS
==========
• Call growers
• Send samples
`

// testEnv returns an Environment with captured output and the given
// variables instead of the process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}, stdout, stderr
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// mockConverter records inputs and returns canned output.
type mockConverter struct {
	mu     sync.Mutex
	inputs []playbook.Input
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input playbook.Input) (*playbook.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &playbook.Result{
		HTML: []byte("<html>" + input.Title + "</html>"),
		PDF:  []byte("%PDF-1.4 mock"),
	}, nil
}
