package assets

// TemplateSet holds the HTML templates for playbook output.
// The cover template renders page 1; the document template wraps the
// rendered pages into a standalone HTML file.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Cover    string // Cover page template
	Document string // Document shell template
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "playbook"

// Template file names inside a template set directory.
const (
	coverFile    = "cover.html"
	documentFile = "document.html"
)
