package lexical

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TocEntry is one line of a table of contents.
type TocEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Depth int    `json:"depth"`
}

// ExtractFromAST lists the document's headings in order. The url of each
// entry is the id Render assigns to the same heading. Headings without text
// or with an invalid tag are left out.
func ExtractFromAST(doc *Document) []TocEntry {
	entries := []TocEntry{}
	if doc == nil || doc.Root == nil {
		return entries
	}

	for _, a := range AssignAnchors(doc.Root) {
		if a.Title == "" {
			continue
		}
		entries = append(entries, TocEntry{Title: a.Title, URL: "#" + a.Slug, Depth: a.Depth})
	}
	return entries
}

// ExtractFromMarkup lists the h1..h6 elements of already rendered HTML.
// Ids are taken as they are and never recomputed, so markup must come from
// Render (or carry ids of its own): headings without an id are skipped.
func ExtractFromMarkup(r io.Reader) ([]TocEntry, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	entries := []TocEntry{}
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if depth := headingDepth(n.DataAtom); depth > 0 {
				id := strings.TrimSpace(attrValue(n, "id"))
				title := strings.TrimSpace(nodeText(n))
				if id != "" && title != "" {
					entries = append(entries, TocEntry{Title: title, URL: "#" + id, Depth: depth})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return entries, nil
}

// ExtractFromMarkupString is ExtractFromMarkup over a string.
func ExtractFromMarkupString(markup string) ([]TocEntry, error) {
	return ExtractFromMarkup(strings.NewReader(markup))
}

func headingDepth(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
