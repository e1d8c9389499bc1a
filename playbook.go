package playbook

import (
	"fmt"
	"strings"
	"sync"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/assets"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/config"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/normalize"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/parser"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/render"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// Document tree types.
type (
	Document    = doctree.Document
	Section     = doctree.Section
	Subsection  = doctree.Subsection
	Item        = doctree.Item
	TOCEntry    = doctree.TOCEntry
	ProspectRow = doctree.ProspectRow
	PageOutline = render.PageOutline
)

// Rule tables.
type (
	Rules        = config.Rules
	Icon         = config.Icon
	ImageRule    = config.ImageRule
	ProductCue   = config.ProductCue
	CoverAnchors = config.CoverAnchors
)

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return config.DefaultRules()
}

// Renderer parses, normalizes and renders playbooks with one rule set.
// It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	parser     *parser.Parser
	normalizer *normalize.Normalizer
	html       *render.Renderer
	bundle     *assets.Bundle
}

// NewRenderer creates a Renderer. Options not related to rendering, such as
// WithTimeout, are ignored.
func NewRenderer(opts ...Option) (*Renderer, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return newRenderer(&s)
}

func newRenderer(s *settings) (*Renderer, error) {
	if err := s.rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	resolver, err := assets.NewAssetResolver(s.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	bundle, err := resolver.Bundle(s.style, s.templateSet)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	cover, err := render.ParseCoverTemplate(bundle.Templates.Cover)
	if err != nil {
		return nil, err
	}
	html, err := render.New(s.rules, render.WithCoverTemplate(cover))
	if err != nil {
		return nil, err
	}
	normalizer, err := normalize.New(s.rules.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	return &Renderer{
		parser:     parser.New(textfmt.NewEscaper(icons(s.rules.Icons))),
		normalizer: normalizer,
		html:       html,
		bundle:     bundle,
	}, nil
}

func icons(rules []config.Icon) []textfmt.Icon {
	out := make([]textfmt.Icon, len(rules))
	for i, r := range rules {
		out[i] = textfmt.Icon(r)
	}
	return out
}

// Parse builds the document tree for text. It never fails: unrecognized
// constructs degrade to paragraphs.
func (r *Renderer) Parse(text string) *Document {
	return r.parser.Parse(text)
}

// ParseFile reads and parses the file at path. A missing or unreadable file
// returns an error wrapping ErrSourceUnavailable.
func (r *Renderer) ParseFile(path string) (*Document, error) {
	text, err := source.Read(path)
	if err != nil {
		return nil, err
	}
	return r.Parse(text), nil
}

// Normalize drops excluded sections and renumbers the rest. The input is
// not modified.
func (r *Renderer) Normalize(doc *Document) *Document {
	return r.normalizer.Normalize(doc)
}

// Render normalizes doc and returns its page containers: cover, contents
// and one page per section.
func (r *Renderer) Render(doc *Document) string {
	return r.html.Render(r.Normalize(doc))
}

// RenderText parses and renders text in one step.
func (r *Renderer) RenderText(text string) string {
	return r.Render(r.Parse(text))
}

// Outline lists the page containers of rendered HTML.
func Outline(fragment string) ([]PageOutline, error) {
	return render.Outline(strings.NewReader(fragment))
}

// defaultRenderer uses the built-in rules and embedded assets, which are
// always valid.
var defaultRenderer = sync.OnceValue(func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic("playbook: default renderer: " + err.Error())
	}
	return r
})

// Parse builds the document tree for text with the built-in rules.
func Parse(text string) *Document {
	return defaultRenderer().Parse(text)
}

// ParseFile reads and parses the file at path with the built-in rules.
func ParseFile(path string) (*Document, error) {
	return defaultRenderer().ParseFile(path)
}

// Render normalizes doc and renders it with the built-in rules.
func Render(doc *Document) string {
	return defaultRenderer().Render(doc)
}
