package playbook

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/render"
)

// Converter turns playbook text into a standalone HTML document and a PDF.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter owns one browser and is not safe for concurrent Convert
// calls; use ConverterPool for parallel work.
type Converter struct {
	*Renderer
	shell *render.Shell
	css   string
	pdf   pdfConverter
}

// NewConverter creates a Converter. The browser is started on the first
// PDF conversion, not here.
func NewConverter(opts ...Option) (*Converter, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	r, err := newRenderer(&s)
	if err != nil {
		return nil, err
	}
	shell, err := render.NewShell(r.bundle.Templates.Document)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		Renderer: r,
		shell:    shell,
		css:      r.bundle.CSS,
		pdf:      s.pdf,
	}
	if c.pdf == nil {
		c.pdf = newRodConverter(s.timeout)
	}
	return c, nil
}

// Convert parses, normalizes and renders input.Text, wraps the pages in the
// document template and prints it to PDF unless input.HTMLOnly is set.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	doc := c.Normalize(c.Parse(input.Text))
	fragment := c.html.Render(doc)

	if input.SourceDir != "" {
		fragment, err = render.ResolveImagePaths(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving image paths: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlDoc, err := c.document(input, fragment)
	if err != nil {
		return nil, err
	}

	res := &Result{Document: doc, HTML: []byte(htmlDoc)}
	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdf.ToPDF(ctx, htmlDoc, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Document wraps rendered page containers in the document template with the
// configured style.
func (c *Converter) Document(title, fragment string) (string, error) {
	return c.document(Input{Title: title}, fragment)
}

func (c *Converter) document(input Input, fragment string) (string, error) {
	title := input.Title
	if title == "" {
		title = defaultTitle
	}
	css := c.css
	if input.CSS != "" {
		css += "\n" + input.CSS
	}

	var buf bytes.Buffer
	err := c.shell.Execute(&buf, render.ShellData{
		Title:   title,
		CSS:     template.CSS(css),       // #nosec G203 -- style comes from trusted assets or the caller
		Content: template.HTML(fragment), // #nosec G203 -- escaped by the parser and renderer
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Text) == "" {
		return ErrEmptySource
	}
	return input.Page.Validate()
}
