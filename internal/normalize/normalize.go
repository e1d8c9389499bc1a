// Package normalize turns a parsed document into the tree that is rendered:
// excluded sections are dropped, the rest renumbered 1..N, subsection
// identifiers rebuilt and the table of contents derived from the result.
package normalize

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
)

// ErrInvalidPattern is returned when an exclusion pattern does not compile.
var ErrInvalidPattern = errors.New("invalid exclusion pattern")

// Page layout: the cover is page 1, the contents page 2, and every section
// occupies one logical page after that.
const (
	CoverPage        = 1
	ContentsPage     = 2
	FirstSectionPage = ContentsPage + 1
)

// Normalizer applies section exclusions and renumbering.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	exclusions []*regexp.Regexp
}

// New compiles the exclusion patterns. Patterns match section titles
// case-insensitively anywhere in the title.
func New(patterns []string) (*Normalizer, error) {
	n := &Normalizer{exclusions: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err)
		}
		n.exclusions = append(n.exclusions, re)
	}
	return n, nil
}

// Normalize returns a normalized copy of doc. The input is not modified;
// content items are shared since they are never mutated. Normalizing the
// result again yields an equal tree.
func (n *Normalizer) Normalize(doc *doctree.Document) *doctree.Document {
	if doc == nil {
		return &doctree.Document{}
	}

	out := &doctree.Document{CoverPage: doc.CoverPage}
	for _, s := range doc.Sections {
		if n.excluded(s.Title) {
			continue
		}
		number := len(out.Sections) + 1
		section := &doctree.Section{
			Number:       number,
			SourceNumber: s.SourceNumber,
			Title:        s.Title,
			Content:      s.Content,
		}
		for _, sub := range s.Subsections {
			section.Subsections = append(section.Subsections, &doctree.Subsection{
				Number:  sub.Number,
				Title:   sub.Title,
				ID:      doctree.SubsectionID(number, sub.Number),
				Content: sub.Content,
			})
		}
		out.Sections = append(out.Sections, section)
	}
	out.TableOfContents = BuildTOC(out.Sections)
	return out
}

func (n *Normalizer) excluded(title string) bool {
	for _, re := range n.exclusions {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// BuildTOC derives the table of contents from sections, assigning each
// section the page after the contents page in order.
func BuildTOC(sections []*doctree.Section) []doctree.TOCEntry {
	entries := make([]doctree.TOCEntry, 0, len(sections))
	for idx, s := range sections {
		entry := doctree.TOCEntry{
			Number:     s.Number,
			Title:      s.Title,
			PageNumber: FirstSectionPage + idx,
		}
		for _, sub := range s.Subsections {
			entry.Subsections = append(entry.Subsections, doctree.TOCSubentry{
				Number: sub.Number,
				Title:  sub.Title,
				ID:     doctree.SubsectionID(s.Number, sub.Number),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
