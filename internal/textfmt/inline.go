package textfmt

import (
	"regexp"
	"sort"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?:https?://|www\.)[^\s<]+`)

// Entities and punctuation that end a sentence rather than a URL.
var urlTrailers = []string{"&quot;", "&#39;", "&gt;", "&lt;", ".", ",", ";", ":", "!", "?", ")"}

// Linkify wraps bare URLs and www. prefixes of already-escaped text in
// anchor tags. Existing markup and anchor contents are left alone.
func Linkify(s string) string {
	return outsideMarkup(s, func(text string) string {
		return urlPattern.ReplaceAllStringFunc(text, linkURL)
	})
}

func linkURL(match string) string {
	url, rest := trimURL(match)
	if url == "" {
		return match
	}
	href := url
	if !strings.HasPrefix(href, "http") {
		href = "https://" + href
	}
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + url + `</a>` + rest
}

func trimURL(match string) (url, rest string) {
	url = match
	for {
		trimmed := false
		for _, t := range urlTrailers {
			if strings.HasSuffix(url, t) {
				url = strings.TrimSuffix(url, t)
				trimmed = true
				break
			}
		}
		if !trimmed {
			break
		}
	}
	if host(url) == "" {
		return "", match
	}
	return url, match[len(url):]
}

// host returns url without its scheme or www. prefix; empty when nothing
// follows the prefix.
func host(url string) string {
	for _, prefix := range []string{"https://", "http://", "www."} {
		if strings.HasPrefix(url, prefix) {
			return url[len(prefix):]
		}
	}
	return ""
}

// Highlighter bolds a fixed set of terms in escaped text.
type Highlighter struct {
	pattern *regexp.Regexp
}

// NewHighlighter builds a case-insensitive whole-word matcher for terms.
// Terms are raw text; they are escaped to match escaped content.
func NewHighlighter(terms []string) *Highlighter {
	escaped := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			escaped = append(escaped, regexp.QuoteMeta(EscapeHTML(t)))
		}
	}
	if len(escaped) == 0 {
		return &Highlighter{}
	}

	// Longest first so "Seriokai's Secret" wins over "Seriokai".
	sort.SliceStable(escaped, func(i, j int) bool { return len(escaped[i]) > len(escaped[j]) })

	return &Highlighter{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`),
	}
}

// Bold wraps every term occurrence outside markup in <strong>.
func (h *Highlighter) Bold(s string) string {
	if h == nil || h.pattern == nil || s == "" {
		return s
	}
	return outsideMarkup(s, func(text string) string {
		return h.pattern.ReplaceAllString(text, "<strong>$0</strong>")
	})
}

// outsideMarkup applies fn to the text runs of s that are neither inside a
// tag nor inside an <a> element.
func outsideMarkup(s string, fn func(string) string) string {
	if !strings.Contains(s, "<") {
		return fn(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	anchorDepth := 0

	for len(s) > 0 {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(applyIf(anchorDepth == 0, s, fn))
			break
		}
		b.WriteString(applyIf(anchorDepth == 0, s[:lt], fn))

		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		tag := s[lt : lt+gt+1]
		b.WriteString(tag)

		switch lower := strings.ToLower(tag); {
		case strings.HasPrefix(lower, "<a ") || lower == "<a>":
			anchorDepth++
		case strings.HasPrefix(lower, "</a>") && anchorDepth > 0:
			anchorDepth--
		}
		s = s[lt+gt+1:]
	}
	return b.String()
}

func applyIf(ok bool, s string, fn func(string) string) string {
	if !ok || s == "" {
		return s
	}
	return fn(s)
}
