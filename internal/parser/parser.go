// Package parser turns playbook plain text into a document tree.
//
// Parsing is total: every input yields a document. Text a specialized
// matcher cannot claim degrades to paragraphs; nothing is reported as an
// error.
package parser

import (
	"strconv"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// tocMarker switches the parser from the cover page to the table of
// contents. The marker line itself is not kept.
const tocMarker = "TABLE OF CONTENTS"

type mode int

const (
	modeCover mode = iota
	modeTOC
	modeSections
)

// Parser builds document trees. It holds no per-parse state and is safe
// for concurrent use.
type Parser struct {
	seg *Segmenter
}

// New creates a Parser that escapes text with esc. A nil esc escapes HTML
// without icon substitution.
func New(esc *textfmt.Escaper) *Parser {
	return &Parser{seg: NewSegmenter(esc)}
}

// Parse builds a document from playbook text.
func (p *Parser) Parse(text string) *doctree.Document {
	st := &state{
		seg:    p.seg,
		doc:    &doctree.Document{},
		hasTOC: strings.Contains(text, tocMarker),
	}
	st.run(splitLines(text))
	return st.doc
}

// splitLines splits text on line feeds, dropping carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// state is the single-pass parse state for one document.
type state struct {
	seg *Segmenter
	doc *doctree.Document
	// hasTOC is set when the text contains a contents marker; everything
	// before it then belongs to the cover.
	hasTOC bool

	mode     mode
	tocLines []string

	section    *doctree.Section
	subsection *doctree.Subsection
	pending    []Line
}

func (st *state) run(raw []string) {
	for i := 0; i < len(raw); {
		line := strings.TrimSpace(raw[i])
		next := ""
		if i+1 < len(raw) {
			next = strings.TrimSpace(raw[i+1])
		}

		switch st.mode {
		case modeCover:
			if strings.Contains(line, tocMarker) {
				st.mode = modeTOC
				i++
				continue
			}
			// A document without a contents page starts at its first
			// section header.
			if _, _, ok := SectionHeader(line, next); ok && !st.hasTOC {
				st.mode = modeSections
				continue
			}
			st.doc.CoverPage = append(st.doc.CoverPage, raw[i])
			i++
			continue

		case modeTOC:
			if IsSectionStart(line) {
				st.mode = modeSections
				continue
			}
			if line != "" && !IsSeparator(line) {
				st.tocLines = append(st.tocLines, raw[i])
			}
			i++
			continue
		}

		i += st.sectionLine(raw[i], line, next)
	}

	st.flush()
	st.doc.TableOfContents = parseTOC(st.tocLines)
}

// sectionLine handles one line in section mode and returns how many lines
// it consumed.
func (st *state) sectionLine(raw, line, next string) int {
	if IsSeparator(line) {
		st.flush()
		return 1
	}

	if num, title, ok := SectionHeader(line, next); ok {
		st.flush()
		n, _ := strconv.Atoi(num)
		st.section = &doctree.Section{Number: n, SourceNumber: n, Title: title}
		st.subsection = nil
		st.doc.Sections = append(st.doc.Sections, st.section)
		return 2
	}

	if st.section == nil {
		return 1
	}

	if _, num, title, ok := SubsectionHeader(line); ok {
		st.flush()
		st.subsection = &doctree.Subsection{
			Number: num,
			Title:  title,
			ID:     doctree.SubsectionID(st.section.Number, num),
		}
		st.section.Subsections = append(st.section.Subsections, st.subsection)
		return 1
	}

	if line == "" {
		st.flush()
		return 1
	}

	st.pending = append(st.pending, newLine(raw))
	return 1
}

// flush segments the pending lines into the open subsection, or the open
// section when no subsection is open. Lines outside any section are
// dropped.
func (st *state) flush() {
	if len(st.pending) == 0 {
		return
	}
	lines := st.pending
	st.pending = nil

	if st.section == nil {
		return
	}
	items := st.seg.Segment(lines)
	if st.subsection != nil {
		st.subsection.Content = append(st.subsection.Content, items...)
		return
	}
	st.section.Content = append(st.section.Content, items...)
}
