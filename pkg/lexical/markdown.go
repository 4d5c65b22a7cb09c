package lexical

import (
	"fmt"
	"strings"
)

// Parser handles Lexical JSON to Markdown conversion
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a Lexical JSON string to Markdown
func (p *Parser) Parse(jsonContent string) (string, error) {
	doc, err := Decode([]byte(jsonContent))
	if err != nil {
		return "", err
	}
	return p.Markdown(doc), nil
}

// Markdown converts a decoded document to Markdown.
func (p *Parser) Markdown(doc *Document) string {
	if doc == nil || doc.Root == nil {
		return ""
	}
	var sb strings.Builder
	p.walkNode(doc.Root, &sb, 0)
	return sb.String()
}

// ParseContent is a convenience function to parse a raw string
// It attempts to parse as Lexical JSON; if it fails (not JSON or error), it returns the original string
func ParseContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, `{"root":`) {
		return content
	}

	md, err := NewParser().Parse(trimmed)
	if err != nil {
		return content
	}
	return md
}

// walkNode traverses the tree and writes markdown
func (p *Parser) walkNode(node Node, sb *strings.Builder, depth int) {
	switch n := node.(type) {
	case *Root:
		for _, child := range n.Children {
			p.walkNode(child, sb, depth)
			sb.WriteString("\n")
		}

	case *Paragraph:
		p.handleParagraph(n, sb, depth)

	case *Heading:
		level, ok := n.Depth()
		if ok {
			sb.WriteString(strings.Repeat("#", level) + " ")
		}
		p.walkChildren(n.Children, sb, depth)
		sb.WriteString("\n")

	case *Quote:
		var inner strings.Builder
		p.walkChildren(n.Children, &inner, depth)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}

	case *Text:
		p.handleText(n, sb)

	case *List:
		p.handleList(n, sb, depth)

	// ListItems are handled by handleList to ensure correct marking (bullet/number/check)
	case *ListItem:
		p.walkChildren(n.Children, sb, depth)

	case *Table:
		p.handleTable(n, sb)

	case *Link:
		sb.WriteString("[")
		p.walkChildren(n.Children, sb, 0)
		sb.WriteString(fmt.Sprintf("](%s)", n.Href()))

	case *Code:
		sb.WriteString("```" + n.Language + "\n")
		sb.WriteString(codeText(n))
		sb.WriteString("\n```\n")

	case *Image:
		sb.WriteString(fmt.Sprintf("![%s](%s)", n.Description(), n.Source()))

	case *Upload:
		sb.WriteString(fmt.Sprintf("![%s](%s)", n.Description(), n.Source()))

	case *LineBreak:
		sb.WriteString("  \n")

	case *Tab:
		sb.WriteString("\t")

	case *HorizontalRule:
		sb.WriteString("---\n")

	case Parent:
		p.walkChildren(n.ChildNodes(), sb, depth)
	}
}

func (p *Parser) walkChildren(children []Node, sb *strings.Builder, depth int) {
	for _, child := range children {
		p.walkNode(child, sb, depth)
	}
}

func (p *Parser) handleParagraph(node *Paragraph, sb *strings.Builder, depth int) {
	align := ""
	if node.Align != "" && node.Align != "left" && node.Align != "start" {
		align = node.Align
	}

	if align != "" {
		sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
	}
	p.walkChildren(node.Children, sb, depth)
	if align != "" {
		sb.WriteString("</div>")
	}
	sb.WriteString("\n")
}

func (p *Parser) handleText(node *Text, sb *strings.Builder) {
	openTag := ParseStyle(node.Style).BuildAnnotatedOpenTag()
	if openTag != "" {
		sb.WriteString(openTag)
	}

	isBold := node.Format.Has(FormatBold)
	isItalic := node.Format.Has(FormatItalic)
	isUnderline := node.Format.Has(FormatUnderline)
	isCode := node.Format.Has(FormatCode)
	isStrike := node.Format.Has(FormatStrikethrough)

	// Apply wrappers (Code > Bold > Italic > Underline > Strike)
	// Markdown has no underline, using HTML <u>
	if isCode {
		sb.WriteString("`")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}
	if isStrike {
		sb.WriteString("~~")
	}

	sb.WriteString(node.Text)

	if isStrike {
		sb.WriteString("~~")
	}
	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isCode {
		sb.WriteString("`")
	}

	if openTag != "" {
		sb.WriteString("</span>")
	}
}

func (p *Parser) handleList(node *List, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, child := range node.Children {
		item, ok := child.(*ListItem)
		if !ok {
			continue
		}

		// Lexical nests a sub-list as the only child of an otherwise empty item.
		if nested, ok := onlyList(item); ok {
			p.handleList(nested, sb, depth+1)
			continue
		}

		// 2 spaces per nesting level
		sb.WriteString(strings.Repeat("  ", depth))

		switch {
		case node.ListType == "check":
			if item.Checked != nil && *item.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		case node.Ordered():
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		default:
			sb.WriteString("- ")
		}

		for _, grandChild := range item.Children {
			if sub, ok := grandChild.(*List); ok {
				sb.WriteString("\n")
				p.handleList(sub, sb, depth+1)
				continue
			}
			p.walkNode(grandChild, sb, depth)
		}
		sb.WriteString("\n")
	}
	if depth == 0 {
		sb.WriteString("\n")
	}
}

func onlyList(item *ListItem) (*List, bool) {
	if len(item.Children) != 1 {
		return nil, false
	}
	l, ok := item.Children[0].(*List)
	return l, ok
}

func (p *Parser) handleTable(node *Table, sb *strings.Builder) {
	var rows [][]string
	maxCols := 0

	for _, child := range node.Children {
		row, ok := child.(*TableRow)
		if !ok {
			continue
		}

		var rowData []string
		for _, cell := range row.Children {
			var cellSb strings.Builder
			p.walkNode(cell, &cellSb, 0)
			// newlines break MD tables
			cleanContent := strings.TrimSpace(strings.ReplaceAll(cellSb.String(), "\n", " "))
			rowData = append(rowData, cleanContent)
		}
		rows = append(rows, rowData)
		if len(rowData) > maxCols {
			maxCols = len(rowData)
		}
	}

	if len(rows) == 0 {
		return
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < maxCols; i++ {
			if i < len(cells) {
				sb.WriteString(" " + cells[i] + " |")
			} else {
				sb.WriteString("  |")
			}
		}
		sb.WriteString("\n")
	}

	// first row is the header
	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat("---|", maxCols) + "\n")
	for _, r := range rows[1:] {
		writeRow(r)
	}
	sb.WriteString("\n")
}
