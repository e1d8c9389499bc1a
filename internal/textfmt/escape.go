// Package textfmt holds the text transforms applied to playbook content:
// escaping with icon substitution when text enters the document tree, and
// the inline bolding and linkification applied at render time.
package textfmt

import (
	"html"
	"strconv"
	"strings"
)

// Placeholder delimiters come from the Unicode private use area so they
// survive HTML escaping untouched.
const (
	placeholderOpen  = '\uE000'
	placeholderClose = '\uE001'
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Icon maps a symbol to the markup that replaces it.
type Icon struct {
	Symbol string
	Class  string
	Color  string
}

// Markup returns the <i> element for the icon.
func (i Icon) Markup() string {
	var b strings.Builder
	b.WriteString(`<i class="`)
	b.WriteString(html.EscapeString(i.Class))
	b.WriteString(`"`)
	if i.Color != "" {
		b.WriteString(` style="color: `)
		b.WriteString(html.EscapeString(i.Color))
		b.WriteString(`;"`)
	}
	b.WriteString(`></i>`)
	return b.String()
}

// Escaper turns raw source text into HTML-safe text with icon markup.
// It is immutable after construction and safe for concurrent use.
type Escaper struct {
	toPlaceholder *strings.Replacer
	toMarkup      *strings.Replacer
	stripReserved *strings.Replacer
}

// NewEscaper builds an Escaper for the given icon table.
func NewEscaper(icons []Icon) *Escaper {
	var in, out []string
	for idx, icon := range icons {
		if icon.Symbol == "" {
			continue
		}
		token := placeholder(idx)
		in = append(in, icon.Symbol, token)
		out = append(out, token, icon.Markup())
	}

	return &Escaper{
		toPlaceholder: strings.NewReplacer(in...),
		toMarkup:      strings.NewReplacer(out...),
		stripReserved: strings.NewReplacer(string(placeholderOpen), "", string(placeholderClose), ""),
	}
}

func placeholder(idx int) string {
	return string(placeholderOpen) + strconv.Itoa(idx) + string(placeholderClose)
}

// Escape HTML-escapes s, then substitutes icon symbols. Symbols are swapped
// for placeholders before escaping so the icon markup itself is never
// escaped.
func (e *Escaper) Escape(s string) string {
	if s == "" {
		return s
	}
	s = e.stripReserved.Replace(s)
	s = e.toPlaceholder.Replace(s)
	s = htmlEscaper.Replace(s)
	return e.toMarkup.Replace(s)
}

// EscapeHTML escapes the five HTML-significant characters without any
// icon substitution.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
