package render

import (
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// writeItems renders a run of items. A paragraph introducing a product not
// yet pictured opens a product section led by its image; the section
// closes at the next product introduction or at the end of the run.
func (s *state) writeItems(items []doctree.Item) {
	open := false
	for _, item := range items {
		if p, ok := item.(doctree.Paragraph); ok {
			if key := s.r.productStart(p.Text); key != "" {
				if open {
					s.b.WriteString("</div>\n")
					open = false
				}
				if rule, known := s.r.byKey[key]; known && !s.placed[key] {
					s.b.WriteString(`<div class="product-section">` + "\n")
					s.writeRuleImage(rule)
					open = true
				}
			}
		}
		s.writeItem(item)
	}
	if open {
		s.b.WriteString("</div>\n")
	}
}

// inline applies the render-time transforms to escaped text.
func (s *state) inline(text string) string {
	return s.r.bold.Bold(textfmt.Linkify(text))
}

func (s *state) writeItem(item doctree.Item) {
	b := &s.b

	switch it := item.(type) {
	case doctree.Paragraph:
		b.WriteString("<p>" + s.inline(it.Text) + "</p>\n")

	case doctree.List:
		tag := "ul"
		if it.Ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">\n")
		for _, li := range it.Items {
			b.WriteString("<li>" + s.inline(li) + "</li>\n")
		}
		b.WriteString("</" + tag + ">\n")

	case doctree.Heading:
		b.WriteString("<h4>" + it.Text + "</h4>\n")

	case doctree.KeyPoints:
		b.WriteString(`<div class="key-points">` + "\n")
		if it.Header != "" {
			b.WriteString("<h4>" + it.Header + "</h4>\n")
		}
		s.writeItems(it.Content)
		b.WriteString("</div>\n")

	case doctree.Example:
		b.WriteString(`<div class="example-box">` + "\n")
		if it.Header != "" {
			b.WriteString("<h4>" + it.Header + "</h4>\n")
		}
		s.writeItems(it.Content)
		b.WriteString("</div>\n")

	case doctree.Email:
		s.writeEmail(it)

	case doctree.HookPoint:
		b.WriteString(`<div class="hook-point-box">` + "\n")
		b.WriteString(`<div class="hook-point-content">` + it.Text + "</div>\n")
		b.WriteString("</div>\n")

	case doctree.Emphasis:
		b.WriteString(`<div class="emphasis-title">` + it.Text + "</div>\n")

	case doctree.ProspectTable:
		s.writeProspects(it.Rows)

	case doctree.Image:
		writeImage(b, "image-container", it.Path, imageCaption(it.Path), imageCaption(it.Path))

	case doctree.FullPageImage:
		writeImage(b, "full-page-image-container", it.Path, imageCaption(it.Path), imageCaption(it.Path))
	}
}

func (s *state) writeEmail(e doctree.Email) {
	b := &s.b
	b.WriteString(`<div class="email-example">` + "\n")
	b.WriteString(`<div class="email-header">` + "\n")
	for _, f := range []struct{ label, value string }{
		{"Subject:", e.Subject},
		{"From:", e.From},
		{"To:", e.To},
	} {
		if f.value != "" {
			b.WriteString(`<div class="field"><span class="field-label">` + f.label + "</span> " + f.value + "</div>\n")
		}
	}
	b.WriteString("</div>\n")

	b.WriteString(`<div class="email-body">` + "\n")
	for _, line := range e.Body {
		b.WriteString("<p>" + s.inline(line) + "</p>\n")
	}
	b.WriteString("</div>\n")
	b.WriteString("</div>\n")
}

func (s *state) writeProspects(rows []doctree.ProspectRow) {
	if len(rows) == 0 {
		return
	}

	b := &s.b
	b.WriteString(`<div class="prospect-table-container">` + "\n")
	b.WriteString(`<table class="prospect-table">` + "\n")
	b.WriteString("<thead>\n<tr>\n")
	for _, h := range []string{"#", "Name", "Address", "Phone", "Email", "Website"} {
		b.WriteString("<th>" + h + "</th>\n")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for _, row := range rows {
		b.WriteString("<tr>\n")
		b.WriteString("<td>" + row.Number + "</td>\n")
		b.WriteString("<td><strong>" + row.Name + "</strong></td>\n")
		b.WriteString("<td>" + row.Address + "</td>\n")
		b.WriteString("<td>" + textfmt.Linkify(row.Phone) + "</td>\n")
		b.WriteString("<td>" + textfmt.Linkify(row.Email) + "</td>\n")
		b.WriteString("<td>" + textfmt.Linkify(row.Website) + "</td>\n")
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n</table>\n</div>\n")
}
