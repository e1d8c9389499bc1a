package render

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveImagePaths rewrites relative img src attributes in a rendered
// fragment to file:// URLs under dir, so the fragment renders the same once
// written elsewhere (a temp file for PDF export). Paths that escape dir,
// absolute paths and URLs are left as they are. An empty dir returns the
// fragment unchanged.
func ResolveImagePaths(fragment, dir string) (string, error) {
	if dir == "" {
		return fragment, nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving image directory: %w", err)
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parsing rendered html: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		rewriteImages(n, absDir)
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
	}
	return b.String(), nil
}

func rewriteImages(n *html.Node, dir string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, a := range n.Attr {
			if a.Key != "src" || !isRelativePath(a.Val) {
				continue
			}
			abs := filepath.Join(dir, filepath.FromSlash(a.Val))
			if !isPathUnderDir(abs, dir) {
				continue
			}
			n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, dir)
	}
}

func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") || filepath.IsAbs(p) {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

func isPathUnderDir(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
