package parser

import (
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/doctree"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

// Iteration caps. They only guard against pathological input: hitting one
// ends the current item early and segmentation continues after it.
const (
	keyPointsCap      = 20  // interior lines of a key-points box
	exampleCap        = 20  // interior lines of an example box
	emailCap          = 30  // lines of an email template, opener included
	hookPointCap      = 5   // content lines of a hook point
	prospectRecordCap = 100 // lines of one prospect record
	prospectLookahead = 5   // a field must appear within the next four lines
)

// Lead-in tolerances: a boundary label only ends a box once the box has
// consumed more than this many lines past its opener.
const (
	keyPointsLeadIn = 1
	hookPointLeadIn = 1
	exampleLeadIn   = 3
	emailLeadIn     = 5
	prospectLeadIn  = 2
)

// Segmenter partitions a block of lines into content items.
type Segmenter struct {
	esc *textfmt.Escaper
}

// NewSegmenter creates a Segmenter that escapes text with esc.
func NewSegmenter(esc *textfmt.Escaper) *Segmenter {
	if esc == nil {
		esc = textfmt.NewEscaper(nil)
	}
	return &Segmenter{esc: esc}
}

// Segment classifies lines into items. Every line is consumed: text no
// specialized matcher claims becomes a paragraph.
func (s *Segmenter) Segment(lines []Line) []doctree.Item {
	var items []doctree.Item

	for i := 0; i < len(lines); {
		item, next := s.next(lines, i)
		if next <= i {
			next = i + 1
		}
		if item != nil {
			items = append(items, item)
		}
		i = next
	}
	return items
}

// next classifies the item starting at lines[i] and returns it with the
// index of the first unconsumed line.
func (s *Segmenter) next(lines []Line, i int) (doctree.Item, int) {
	text := lines[i].Text

	if path, fullPage, ok := ImageDirective(text); ok {
		if fullPage {
			return doctree.FullPageImage{Path: s.esc.Escape(path)}, i + 1
		}
		return doctree.Image{Path: s.esc.Escape(path)}, i + 1
	}

	if IsLabel(text) {
		return doctree.Heading{Text: s.esc.Escape(LabelText(text))}, i + 1
	}

	switch BlockOpener(text) {
	case BlockKeyPoints:
		return s.keyPoints(lines, i)
	case BlockEmail:
		return s.email(lines, i)
	case BlockHookPoint:
		if item, next, ok := s.hookPoint(lines, i); ok {
			return item, next
		}
	case BlockExample:
		return s.example(lines, i)
	case BlockEmphasis:
		if m := emphasisRe.FindStringSubmatch(text); m != nil {
			return doctree.Emphasis{Text: s.esc.Escape(strings.TrimSpace(m[1]))}, i + 1
		}
	}

	if IsProspectStart(lines, i) {
		if item, next, ok := s.prospectTable(lines, i); ok {
			return item, next
		}
	}

	if _, _, ok := ListMarker(text); ok {
		if item, next, ok := s.list(lines, i); ok {
			return item, next
		}
	}

	return s.paragraph(lines, i)
}

// boxInterior collects the lines after the opener at start until a boundary
// label past the lead-in, a separator, or the cap.
func boxInterior(lines []Line, start, leadIn, limit int) ([]Line, int) {
	var interior []Line
	i := start + 1
	for i < len(lines) && len(interior) < limit {
		text := lines[i].Text
		if IsBoundaryLabel(text) && i > start+leadIn {
			break
		}
		if IsSeparator(text) {
			break
		}
		interior = append(interior, lines[i])
		i++
	}
	return interior, i
}

func (s *Segmenter) keyPoints(lines []Line, start int) (doctree.Item, int) {
	interior, next := boxInterior(lines, start, keyPointsLeadIn, keyPointsCap)
	return doctree.KeyPoints{
		Header:  s.esc.Escape(lines[start].Text),
		Content: s.Segment(interior),
	}, next
}

func (s *Segmenter) example(lines []Line, start int) (doctree.Item, int) {
	interior, next := boxInterior(lines, start, exampleLeadIn, exampleCap)
	return doctree.Example{
		Header:  s.esc.Escape(lines[start].Text),
		Content: s.Segment(interior),
	}, next
}

func (s *Segmenter) email(lines []Line, start int) (doctree.Item, int) {
	var e doctree.Email
	i := start

	// Header: the opener plus any SUBJECT/FROM/TO lines, ended by the first
	// other line. A dashed rule between header and body is dropped.
	for i < len(lines) {
		text := lines[i].Text
		if m := emailFieldRe.FindStringSubmatch(text); m != nil {
			value := s.esc.Escape(strings.TrimSpace(m[2]))
			switch strings.ToUpper(m[1]) {
			case "SUBJECT":
				e.Subject = value
			case "FROM":
				e.From = value
			case "TO":
				e.To = value
			}
			i++
			continue
		}
		if i == start {
			i++
			continue
		}
		if ruleRe.MatchString(text) {
			i++
		}
		break
	}

	for i < len(lines) && i-start < emailCap {
		text := lines[i].Text
		if IsBoundaryLabel(text) && i > start+emailLeadIn {
			break
		}
		if IsSeparator(text) {
			break
		}
		e.Body = append(e.Body, s.esc.Escape(text))
		i++
	}

	return e, i
}

func (s *Segmenter) hookPoint(lines []Line, start int) (doctree.Item, int, bool) {
	var content []string
	if _, rest, found := strings.Cut(lines[start].Text, ":"); found {
		if rest = strings.TrimSpace(rest); rest != "" {
			content = append(content, rest)
		}
	}

	i := start + 1
	for i < len(lines) && len(content) < hookPointCap {
		text := lines[i].Text
		if IsBoundaryLabel(text) && i > start+hookPointLeadIn {
			break
		}
		// A list after the hook text is its own item.
		if _, _, ok := ListMarker(text); ok && len(content) > 0 {
			break
		}
		content = append(content, text)
		i++
	}

	if len(content) == 0 {
		return nil, start, false
	}
	return doctree.HookPoint{Text: s.esc.Escape(strings.Join(content, " "))}, i, true
}

func (s *Segmenter) prospectTable(lines []Line, start int) (doctree.Item, int, bool) {
	var rows []doctree.ProspectRow
	i := start

	for i < len(lines) {
		text := lines[i].Text
		number, name, ok := NumberedItem(text)
		if !ok {
			// Category labels between records group rows; one not followed
			// by another record ends the table.
			if IsCategory(text) && i+1 < len(lines) {
				if _, _, next := NumberedItem(lines[i+1].Text); next {
					i++
					continue
				}
			}
			break
		}

		row := doctree.ProspectRow{
			Number: s.esc.Escape(number),
			Name:   s.esc.Escape(name),
		}
		recordStart := i
		i++

		for i < len(lines) && i-recordStart <= prospectRecordCap {
			field := lines[i].Text
			if _, _, ok := NumberedItem(field); ok {
				break
			}
			if IsCategory(field) && i > start+prospectLeadIn {
				break
			}
			if IsRule(field) {
				break
			}
			if IsBoundaryLabel(field) && i > start+prospectLeadIn {
				break
			}
			// Lines that are not fields, such as free notes, belong to the
			// record but have no column and are not rendered.
			if key, value, ok := ProspectField(field); ok {
				value = s.esc.Escape(value)
				switch key {
				case "address":
					row.Address = value
				case "phone":
					row.Phone = value
				case "email":
					row.Email = value
				case "website":
					row.Website = value
				}
			}
			i++
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, start, false
	}
	return doctree.ProspectTable{Rows: rows}, i, true
}

func (s *Segmenter) list(lines []Line, start int) (doctree.Item, int, bool) {
	_, ordered, _ := ListMarker(lines[start].Text)
	baseIndent := lines[start].Indent

	var items, current []string
	flush := func() {
		if len(current) > 0 {
			items = append(items, s.esc.Escape(strings.Join(current, " ")))
			current = nil
		}
	}

	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if i > start && (IsLabel(line.Text) || IsBoundaryLabel(line.Text)) {
			break
		}
		if text, _, ok := ListMarker(line.Text); ok {
			if line.Indent > baseIndent {
				break
			}
			flush()
			current = append(current, text)
			continue
		}
		if _, _, ok := ImageDirective(line.Text); ok {
			break
		}
		current = append(current, line.Text)
	}
	flush()

	if len(items) == 0 {
		return nil, start, false
	}
	return doctree.List{Ordered: ordered, Items: items}, i, true
}

func (s *Segmenter) paragraph(lines []Line, start int) (doctree.Item, int) {
	parts := []string{lines[start].Text}
	i := start + 1
	for ; i < len(lines); i++ {
		if endsParagraph(lines[i].Text) {
			break
		}
		parts = append(parts, lines[i].Text)
	}
	return doctree.Paragraph{Text: s.esc.Escape(strings.Join(parts, " "))}, i
}

// endsParagraph reports whether text starts a list, a heading, an image or
// a special block.
func endsParagraph(text string) bool {
	if _, _, ok := ListMarker(text); ok {
		return true
	}
	if IsLabel(text) || IsBoundaryLabel(text) {
		return true
	}
	if _, _, ok := ImageDirective(text); ok {
		return true
	}
	return BlockOpener(text) != BlockNone
}
