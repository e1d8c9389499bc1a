package render

import (
	"strings"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/normalize"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/parser"
)

// CoverData is the data passed to the cover page template. Fields hold raw
// text; the template escapes them.
type CoverData struct {
	Page         int
	Logo         string
	LogoAlt      string
	Organization string
	Title        []string
	Subtitle     string
	Description  []string
	Version      []string
	Summary      []string
}

// coverData locates the cover blocks in the raw cover-page lines. Each
// block starts at the line holding its anchor phrase; multi-line blocks run
// until a blank line or the next block's anchor.
func (r *Renderer) coverData(lines []string) CoverData {
	a := r.anchors
	data := CoverData{
		Page:    normalize.CoverPage,
		Logo:    a.Logo,
		LogoAlt: a.LogoAlt,
	}

	has := func(line, anchor string) bool {
		return anchor != "" && strings.Contains(line, anchor)
	}
	// block collects trimmed lines from i until a blank line or a line
	// containing stop, returning the index of the last collected line.
	block := func(i int, stop string) ([]string, int) {
		var out []string
		for ; i < len(lines); i++ {
			l := strings.TrimSpace(lines[i])
			if l == "" || (len(out) > 0 && has(l, stop)) {
				break
			}
			out = append(out, l)
		}
		return out, i - 1
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "" || parser.IsSeparator(line):
		case has(line, a.Organization):
			data.Organization = line
		case a.Title != "" && strings.HasPrefix(line, a.Title):
			data.Title, i = block(i, a.Subtitle)
		case has(line, a.Subtitle):
			data.Subtitle = line
		case has(line, a.Description):
			data.Description, i = block(i, a.Version)
		case has(line, a.Version):
			data.Version = []string{line}
			if i+1 < len(lines) {
				i++
				if next := strings.TrimSpace(lines[i]); next != "" {
					data.Version = append(data.Version, next)
				}
			}
		case has(line, a.Summary):
			data.Summary, _ = block(i, "")
			return data
		}
	}
	return data
}

func (s *state) writeCover(lines []string) {
	var buf strings.Builder
	if err := s.r.cover.Execute(&buf, s.r.coverData(lines)); err != nil {
		// Keep the page structure when a custom template fails.
		s.b.WriteString(`<div class="page" id="cover">` + "\n")
		s.writePageNumber(normalize.CoverPage)
		s.b.WriteString("</div>\n")
		return
	}
	s.b.WriteString(buf.String())
}
