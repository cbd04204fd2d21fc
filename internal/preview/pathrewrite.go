package preview

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveLocalPaths turns deck-relative img[src] and a[href] values into
// absolute file:// URLs so the page still finds its images when it is
// loaded from a temporary file. Paths resolving outside boundary (the
// vault root; deckDir when empty), URLs, anchors and absolute paths are
// left alone. An empty deckDir returns the input.
func ResolveLocalPaths(htmlContent, deckDir, boundary string) (string, error) {
	if deckDir == "" {
		return htmlContent, nil
	}
	absDir, err := filepath.Abs(deckDir)
	if err != nil {
		return "", err
	}
	if boundary == "" {
		boundary = deckDir
	}
	absBoundary, err := filepath.Abs(boundary)
	if err != nil {
		return "", err
	}

	doc, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	walk(doc, absDir, absBoundary)
	return renderHTML(doc, fragment)
}

// parseHTML parses a full document, or a fragment in body context.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderHTML(doc *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, dir, boundary string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", dir, boundary)
		case atom.A:
			rewriteAttr(n, "href", dir, boundary)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, dir, boundary)
	}
}

func rewriteAttr(n *html.Node, key, dir, boundary string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isLocalRelative(attr.Val) {
			continue
		}
		// Decks write percent-encoded and angle-bracketed paths.
		p, err := url.PathUnescape(attr.Val)
		if err != nil {
			p = attr.Val
		}
		abs := filepath.Join(dir, filepath.FromSlash(p))
		if !within(abs, boundary) {
			continue
		}
		n.Attr[i].Val = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
}

func isLocalRelative(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") || filepath.IsAbs(p) {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

// within reports whether path lies inside dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
