package textfmt_test

import (
	"testing"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/textfmt"
)

const (
	apple = `<i class="fas fa-apple-alt"></i>`
	peach = `<i class="fas fa-seedling" style="color: #f4a261;"></i>`
	attrs = ` target="_blank" rel="noopener noreferrer"`
)

// ---------------------------------------------------------------------------
// TestEscaper - Escaping with icon substitution
// ---------------------------------------------------------------------------

func TestEscaper(t *testing.T) {
	t.Parallel()

	esc := textfmt.NewEscaper([]textfmt.Icon{
		{Symbol: "🍎", Class: "fas fa-apple-alt"},
		{Symbol: "🍑", Class: "fas fa-seedling", Color: "#f4a261"},
		{Symbol: "", Class: "ignored"},
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "Soil first", "Soil first"},
		{"markup characters", `<b>"x" & 'y'</b>`, "&lt;b&gt;&quot;x&quot; &amp; &#39;y&#39;&lt;/b&gt;"},
		{"icon with text", "Pomona 🍎 & more", "Pomona " + apple + " &amp; more"},
		{"icon with color", "🍑 Peaches", peach + " Peaches"},
		{"icon before digits", "🍎12 acres", apple + "12 acres"},
		{"adjacent icons", "🍎🍑1", apple + peach + "1"},
		{"reserved characters are stripped", "a\uE0000\uE001b", "a0b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := esc.Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscaper_NoIcons(t *testing.T) {
	t.Parallel()

	in := "🍎 <tag>"
	if got, want := textfmt.NewEscaper(nil).Escape(in), textfmt.EscapeHTML(in); got != want {
		t.Errorf("Escape(%q) = %q, want %q", in, got, want)
	}
}

// ---------------------------------------------------------------------------
// TestLinkify - Bare URLs become anchors
// ---------------------------------------------------------------------------

func TestLinkify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no url",
			in:   "Call growers in spring.",
			want: "Call growers in spring.",
		},
		{
			name: "trailing period is not part of the link",
			in:   "Visit https://pomona.example/path.",
			want: `Visit <a href="https://pomona.example/path"` + attrs + `>https://pomona.example/path</a>.`,
		},
		{
			name: "closing parenthesis and www prefix",
			in:   "(see www.acme.example)",
			want: `(see <a href="https://www.acme.example"` + attrs + `>www.acme.example</a>)`,
		},
		{
			name: "escaped double quotes around the url",
			in:   "&quot;https://a.example&quot;",
			want: `&quot;<a href="https://a.example"` + attrs + `>https://a.example</a>&quot;`,
		},
		{
			name: "escaped single quotes around the url",
			in:   "&#39;www.b.example&#39;",
			want: `&#39;<a href="https://www.b.example"` + attrs + `>www.b.example</a>&#39;`,
		},
		{
			name: "escaped ampersand stays in the query",
			in:   "https://x.example/?a=1&amp;b=2",
			want: `<a href="https://x.example/?a=1&amp;b=2"` + attrs + `>https://x.example/?a=1&amp;b=2</a>`,
		},
		{
			name: "bare www prefix is left alone",
			in:   "Type www. then the name",
			want: "Type www. then the name",
		},
		{
			name: "bare scheme is left alone",
			in:   "https:// is required",
			want: "https:// is required",
		},
		{
			name: "existing anchor is untouched",
			in:   `<a href="https://x.example">https://x.example</a>`,
			want: `<a href="https://x.example">https://x.example</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := textfmt.Linkify(tt.in); got != tt.want {
				t.Errorf("Linkify(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHighlighter - Bold terms in escaped text
// ---------------------------------------------------------------------------

func TestHighlighter(t *testing.T) {
	t.Parallel()

	h := textfmt.NewHighlighter([]string{"Pomona", "Seriokai", "Seriokai's Secret", "  "})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single term", "Pomona works", "<strong>Pomona</strong> works"},
		{"case-insensitive", "POMONA works", "<strong>POMONA</strong> works"},
		{"whole words only", "Pomonas grow", "Pomonas grow"},
		{
			name: "longest term wins and matches escaped apostrophe",
			in:   "Try Seriokai&#39;s Secret today",
			want: "Try <strong>Seriokai&#39;s Secret</strong> today",
		},
		{"shorter term alone", "Seriokai blend", "<strong>Seriokai</strong> blend"},
		{
			name: "anchor text and attributes are skipped",
			in:   `<a href="https://pomona.example">Pomona site</a> and Pomona`,
			want: `<a href="https://pomona.example">Pomona site</a> and <strong>Pomona</strong>`,
		},
		{
			name: "other tags are crossed",
			in:   `<em>Pomona</em>`,
			want: `<em><strong>Pomona</strong></em>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := h.Bold(tt.in); got != tt.want {
				t.Errorf("Bold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHighlighter_NoTerms(t *testing.T) {
	t.Parallel()

	var nilHighlighter *textfmt.Highlighter
	for _, h := range []*textfmt.Highlighter{nilHighlighter, textfmt.NewHighlighter(nil)} {
		if got := h.Bold("Pomona"); got != "Pomona" {
			t.Errorf("Bold() = %q, want input unchanged", got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestInline - Linkify then bold, as the renderer applies them
// ---------------------------------------------------------------------------

func TestInline(t *testing.T) {
	t.Parallel()

	h := textfmt.NewHighlighter([]string{"Pomona"})
	in := "Visit www.pomona.example for Pomona."
	want := `Visit <a href="https://www.pomona.example"` + attrs + `>www.pomona.example</a> for <strong>Pomona</strong>.`

	if got := h.Bold(textfmt.Linkify(in)); got != want {
		t.Errorf("Bold(Linkify(%q)) =\n%q\nwant\n%q", in, got, want)
	}
}
