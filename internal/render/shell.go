package render

import (
	"fmt"
	"html/template"
	"io"
)

// ShellData is passed to the document shell template.
type ShellData struct {
	Title   string
	CSS     template.CSS
	Content template.HTML // Trusted output of Render
}

// Shell wraps rendered page containers into a standalone HTML document.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses a document shell template.
func NewShell(src string) (*Shell, error) {
	t, err := template.New("document").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: document: %v", ErrInvalidTemplate, err)
	}
	return &Shell{tmpl: t}, nil
}

// Execute writes the full document to w.
func (s *Shell) Execute(w io.Writer, data ShellData) error {
	if err := s.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return nil
}
