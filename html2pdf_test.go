package playbook

import (
	"context"
	"errors"
	"os"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	result      []byte
	err         error
	calledWith  string
	fileContent string
	calledOpts  *pdfOptions
	closed      bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.calledWith = filePath
	m.calledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.fileContent = string(data)
	}
	return m.result, m.err
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - Temp File Handoff
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>Orchards</body></html>",
			mock: &mockRenderer{result: []byte("%PDF-1.4 fake")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{err: ErrPageLoad},
			wantErr: ErrPageLoad,
		},
		{
			name: "unicode content succeeds",
			html: "<p>🍎 Huertos</p>",
			mock: &mockRenderer{result: []byte("%PDF-1.4")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &rodConverter{renderer: tt.mock}
			got, err := c.ToPDF(context.Background(), tt.html, &pdfOptions{})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToPDF() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}
			if string(got) != string(tt.mock.result) {
				t.Errorf("ToPDF() = %q, want %q", got, tt.mock.result)
			}
			if tt.mock.fileContent != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.fileContent, tt.html)
			}
			if _, err := os.Stat(tt.mock.calledWith); !os.IsNotExist(err) {
				t.Errorf("temp file %s not removed", tt.mock.calledWith)
			}
		})
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	c := &rodConverter{renderer: mock}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("renderer not closed")
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := newRodRenderer(defaultTimeout).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Context is checked before the browser is launched.
	_, err := newRodRenderer(defaultTimeout).RenderFromFile(ctx, "/tmp/none.html", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Page Settings Mapping
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          *pdfOptions
		width, height float64
		margin        float64
	}{
		{"nil options use letter portrait", nil, 8.5, 11, DefaultMargin},
		{"nil page uses defaults", &pdfOptions{}, 8.5, 11, DefaultMargin},
		{"a4 portrait", &pdfOptions{Page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}}, 8.27, 11.69, 1},
		{"legal landscape swaps sides", &pdfOptions{Page: &PageSettings{Size: "legal", Orientation: "landscape", Margin: 0.75}}, 14, 8.5, 0.75},
		{"case insensitive", &pdfOptions{Page: &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5}}, 11.69, 8.27, 0.5},
		{"zero margin uses default", &pdfOptions{Page: &PageSettings{Size: "letter", Orientation: "portrait"}}, 8.5, 11, DefaultMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.width || *got.PaperHeight != tt.height {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.width, tt.height)
			}
			for name, m := range map[string]*float64{
				"top": got.MarginTop, "bottom": got.MarginBottom, "left": got.MarginLeft, "right": got.MarginRight,
			} {
				if *m != tt.margin {
					t.Errorf("margin %s = %v, want %v", name, *m, tt.margin)
				}
			}
			if !got.PrintBackground {
				t.Error("PrintBackground = false")
			}
			if got.DisplayHeaderFooter {
				t.Error("DisplayHeaderFooter = true")
			}
		})
	}
}
