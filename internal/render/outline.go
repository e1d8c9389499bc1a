package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageOutline summarizes one page container of rendered output.
type PageOutline struct {
	ID       string    `json:"id"`
	Page     int       `json:"page"`
	Title    string    `json:"title"`
	Headings []Heading `json:"headings,omitempty"`
}

// Heading is a subsection heading inside a page.
type Heading struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Outline reads rendered HTML and lists its page containers in order with
// their titles, page numbers and subsection headings.
func Outline(r io.Reader) ([]PageOutline, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing rendered html: %w", err)
	}

	var pages []PageOutline
	var walk func(n *html.Node, idx int)
	walk = func(n *html.Node, idx int) {
		if n.Type == html.ElementNode {
			switch {
			case n.DataAtom == atom.Div && hasClass(n, "page"):
				pages = append(pages, PageOutline{ID: attr(n, "id")})
				idx = len(pages) - 1
			case idx < 0:
			case n.DataAtom == atom.Div && hasClass(n, "page-number"):
				pages[idx].Page, _ = strconv.Atoi(strings.TrimSpace(text(n)))
				return
			case (n.DataAtom == atom.H1 || n.DataAtom == atom.H2) && pages[idx].Title == "":
				pages[idx].Title = strings.TrimSpace(text(n))
				return
			case n.DataAtom == atom.H3:
				pages[idx].Headings = append(pages[idx].Headings, Heading{
					ID:   attr(n, "id"),
					Text: strings.TrimSpace(text(n)),
				})
				return
			case n.DataAtom == atom.Div && hasClass(n, "cover-title") && pages[idx].Title == "":
				pages[idx].Title = strings.Join(strings.Fields(text(n)), " ")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, idx)
		}
	}
	walk(root, -1)
	return pages, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
