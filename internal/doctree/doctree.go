// Package doctree defines the typed document tree produced by the playbook
// parser and consumed by the normalizer and the HTML renderer.
//
// Text fields of content items hold HTML-safe text: escaping and icon
// substitution happen once, when the text enters an item. Section and
// subsection titles are kept raw and escaped by the renderer.
package doctree

import "strconv"

// Document is the root of a parse.
type Document struct {
	CoverPage       []string   // Raw cover-page lines, verbatim
	TableOfContents []TOCEntry // Parsed from the literal TOC text (non-authoritative)
	Sections        []*Section // Numbered sections in source order
}

// Section is a numbered top-level part of the playbook.
type Section struct {
	Number       int    // Current number (renumbered by normalization)
	SourceNumber int    // Number as written in the source
	Title        string // Raw title text
	Subsections  []*Subsection
	Content      []Item // Items appearing before the first subsection
}

// ID returns the anchor identifier of the section page container.
func (s *Section) ID() string {
	return "section" + strconv.Itoa(s.Number)
}

// Subsection is scoped to its parent section; its Number is the part after
// the dot ("3.2" has Number "2").
type Subsection struct {
	Number  string
	Title   string
	ID      string // Anchor identifier, rebuilt from the parent number
	Content []Item
}

// SubsectionID builds the anchor identifier for subsection sub of section.
func SubsectionID(section int, sub string) string {
	return "section" + strconv.Itoa(section) + "-" + sub
}

// TOCEntry is one table-of-contents line for a section.
// Entries parsed from the source carry the page number written there; the
// normalizer recomputes it.
type TOCEntry struct {
	Number      int
	Title       string
	PageNumber  int
	Subsections []TOCSubentry
}

// TOCSubentry is a subsection line inside a TOCEntry.
type TOCSubentry struct {
	Number string
	Title  string
	ID     string
}
