package lexical

import "strings"

// Walk visits n and its descendants in pre-order, children in array order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if p, ok := n.(Parent); ok {
		for _, child := range p.ChildNodes() {
			Walk(child, fn)
		}
	}
}

// Anchor is a heading together with the id it is published under.
type Anchor struct {
	Heading *Heading
	Depth   int
	Title   string
	Slug    string
}

// AssignAnchors walks root once in document order and slugs every heading
// with a valid depth through one fresh Slugger. Headings with an empty title
// still receive a slug; headings with an invalid tag receive none.
// Both Render and ExtractFromAST are built on this pass.
func AssignAnchors(root Node) []Anchor {
	var anchors []Anchor
	slugger := NewSlugger()

	Walk(root, func(n Node) bool {
		h, ok := n.(*Heading)
		if !ok {
			return true
		}
		depth, ok := h.Depth()
		if !ok {
			return true
		}
		title := strings.TrimSpace(PlainText(h))
		anchors = append(anchors, Anchor{
			Heading: h,
			Depth:   depth,
			Title:   title,
			Slug:    slugger.Generate(title),
		})
		return true
	})
	return anchors
}

// PlainText concatenates the text leaves below n, ignoring formatting.
// Line breaks, tabs, images and uploads contribute nothing.
func PlainText(n Node) string {
	var sb strings.Builder
	Walk(n, func(node Node) bool {
		if t, ok := node.(*Text); ok {
			sb.WriteString(t.Text)
		}
		return true
	})
	return sb.String()
}
