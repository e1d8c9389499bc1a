// Package render turns a normalized document tree into paginated HTML: a
// cover page, a contents page and one page container per section.
//
// Item text arrives escaped from the parser and is never escaped again;
// section and subsection titles are escaped here. Rendering is pure: each
// call to Render works on its own state, so a Renderer may be shared.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/assets"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/normalize"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// Sentinel errors for renderer construction.
var (
	ErrInvalidRules    = errors.New("invalid render rules")
	ErrInvalidTemplate = errors.New("invalid template")
)

// Renderer renders documents with a fixed rule set.
// It is immutable after construction and safe for concurrent use.
type Renderer struct {
	bold     *textfmt.Highlighter
	images   []imageRule
	byKey    map[string]imageRule
	products []productCue
	anchors  config.CoverAnchors
	cover    *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCoverTemplate replaces the cover page template. The template receives
// a CoverData value.
func WithCoverTemplate(t *template.Template) Option {
	return func(r *Renderer) {
		if t != nil {
			r.cover = t
		}
	}
}

// New creates a Renderer for rules. The cover template defaults to the
// embedded one.
func New(rules config.Rules, opts ...Option) (*Renderer, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	products, err := compileProducts(rules.Products)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	r := &Renderer{
		bold:     textfmt.NewHighlighter(rules.BoldTerms),
		products: products,
		anchors:  rules.Cover,
	}
	r.images, r.byKey = compileImages(rules.Images)

	for _, opt := range opts {
		opt(r)
	}

	if r.cover == nil {
		set, err := assets.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			return nil, err
		}
		if r.cover, err = ParseCoverTemplate(set.Cover); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ParseCoverTemplate parses a cover page template.
func ParseCoverTemplate(src string) (*template.Template, error) {
	t, err := template.New("cover").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: cover: %v", ErrInvalidTemplate, err)
	}
	return t, nil
}

// state is the transient state of one Render call.
type state struct {
	r      *Renderer
	b      strings.Builder
	placed map[string]bool // image keys already inserted
}

// Render returns the page containers for doc: cover, contents and one page
// per section. The table of contents is derived from doc.Sections, so doc
// should already be normalized.
func (r *Renderer) Render(doc *doctree.Document) string {
	if doc == nil {
		doc = &doctree.Document{}
	}
	s := &state{r: r, placed: make(map[string]bool)}

	s.writeCover(doc.CoverPage)
	s.writeTOC(normalize.BuildTOC(doc.Sections))
	for idx, section := range doc.Sections {
		s.writeSection(section, normalize.FirstSectionPage+idx)
	}
	return s.b.String()
}

func (s *state) writeTOC(entries []doctree.TOCEntry) {
	s.b.WriteString(`<div class="page" id="toc">` + "\n")
	s.b.WriteString("<h1>TABLE OF CONTENTS</h1>\n")
	s.b.WriteString(`<div class="toc">` + "\n")

	for _, e := range entries {
		num := strconv.Itoa(e.Number)
		s.b.WriteString(`<div class="toc-item">` + "\n")
		s.b.WriteString(`<a href="#section` + num + `">` + num + ". " + textfmt.EscapeHTML(e.Title) +
			" <span>Page " + strconv.Itoa(e.PageNumber) + "</span></a>\n")
		for _, sub := range e.Subsections {
			s.b.WriteString(`<div class="toc-subitem"><a href="#` + sub.ID + `">` + num + "." + textfmt.EscapeHTML(sub.Number) +
				" " + textfmt.EscapeHTML(sub.Title) + "</a></div>\n")
		}
		s.b.WriteString("</div>\n")
	}

	s.b.WriteString("</div>\n")
	s.writePageNumber(normalize.ContentsPage)
	s.b.WriteString("</div>\n")
}

func (s *state) writeSection(section *doctree.Section, page int) {
	num := strconv.Itoa(section.Number)
	s.b.WriteString(`<div class="page" id="` + section.ID() + `">` + "\n")
	s.b.WriteString(`<div class="page-content">` + "\n")
	s.b.WriteString("<h2>" + num + ". " + textfmt.EscapeHTML(section.Title) + "</h2>\n")

	s.writeItems(section.Content)

	for _, sub := range section.Subsections {
		s.writeSubsection(num, sub)
	}

	s.b.WriteString("</div>\n")
	s.writePageNumber(page)
	s.b.WriteString("</div>\n")
}

func (s *state) writeSubsection(sectionNum string, sub *doctree.Subsection) {
	s.b.WriteString(`<h3 id="` + textfmt.EscapeHTML(sub.ID) + `">` + sectionNum + "." + textfmt.EscapeHTML(sub.Number) +
		" " + textfmt.EscapeHTML(sub.Title) + "</h3>\n")

	rule, ok := s.titleImage(sub.Title)
	if !ok {
		s.writeItems(sub.Content)
		return
	}

	switch rule.Placement {
	case config.PlacementLead:
		s.b.WriteString(`<div class="product-section">` + "\n")
		s.writeRuleImage(rule)
		s.writeItems(sub.Content)
		s.b.WriteString("</div>\n")
	case config.PlacementWrap:
		s.b.WriteString(`<div class="` + textfmt.EscapeHTML(rule.WrapClass) + `">` + "\n")
		s.writeItems(sub.Content)
		s.writeRuleImage(rule)
		s.b.WriteString("</div>\n")
	default:
		s.writeItems(sub.Content)
		s.writeRuleImage(rule)
	}
}

func (s *state) writePageNumber(page int) {
	s.b.WriteString(`<div class="page-number">` + strconv.Itoa(page) + "</div>\n")
}
