package lexical

import "strings"

// Excerpt returns the first limit runes of the document's text, blocks joined
// by single spaces and runs of whitespace collapsed.
func Excerpt(doc *Document, limit int) string {
	if doc == nil || doc.Root == nil || limit <= 0 {
		return ""
	}

	var blocks []string
	Walk(doc.Root, func(n Node) bool {
		switch n.(type) {
		case *Paragraph, *Heading, *Quote, *ListItem, *Code, *TableCell:
			blocks = append(blocks, spacedText(n))
			return false
		}
		return true
	})

	text := strings.Join(strings.Fields(strings.Join(blocks, " ")), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}

// spacedText is PlainText with line breaks and tabs read as spaces.
func spacedText(n Node) string {
	var sb strings.Builder
	Walk(n, func(node Node) bool {
		switch node := node.(type) {
		case *Text:
			sb.WriteString(node.Text)
		case *LineBreak, *Tab:
			sb.WriteString(" ")
		}
		return true
	})
	return sb.String()
}
