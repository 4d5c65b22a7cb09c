package lexical

import (
	"html"
	"strconv"
	"strings"
)

// textWrappers is the fixed nesting order of format bits, innermost first.
var textWrappers = []struct {
	flag Format
	tag  string
}{
	{FormatBold, "strong"},
	{FormatItalic, "em"},
	{FormatStrikethrough, "s"},
	{FormatUnderline, "u"},
	{FormatCode, "code"},
	{FormatSubscript, "sub"},
	{FormatSuperscript, "sup"},
	{FormatHighlight, "mark"},
}

// Render converts a document to HTML. A nil document or root renders as "".
// Each call slugs headings with its own registry, so repeated renders of
// the same document are byte-identical.
func Render(doc *Document) string {
	if doc == nil || doc.Root == nil {
		return ""
	}
	return RenderNode(doc.Root)
}

// RenderNode renders n as if it were the whole document.
func RenderNode(n Node) string {
	if n == nil {
		return ""
	}

	r := &htmlRenderer{ids: make(map[*Heading]string)}
	for _, a := range AssignAnchors(n) {
		r.ids[a.Heading] = a.Slug
	}
	r.node(n)
	return r.sb.String()
}

type htmlRenderer struct {
	sb  strings.Builder
	ids map[*Heading]string
}

func (r *htmlRenderer) node(n Node) {
	switch n := n.(type) {
	case *Root:
		r.children(n.Children)
	case *Unknown:
		r.children(n.Children)
	case *Text:
		r.text(n)
	case *Paragraph:
		if len(n.Children) == 0 {
			r.sb.WriteString("<p><br></p>")
			return
		}
		r.block("p", "", n.Children)
	case *Quote:
		r.block("blockquote", "", n.Children)
	case *Heading:
		r.heading(n)
	case *List:
		r.list(n)
	case *ListItem:
		attrs := ""
		if n.Checked != nil {
			attrs = attr("data-checked", strconv.FormatBool(*n.Checked))
		}
		r.block("li", attrs, n.Children)
	case *Link:
		r.link(n)
	case *LineBreak:
		r.sb.WriteString("<br>")
	case *Tab:
		r.sb.WriteString("\t")
	case *Code:
		r.code(n)
	case *Image:
		r.image(n.Source(), n.Description())
	case *Upload:
		r.image(n.Source(), n.Description())
	case *HorizontalRule:
		r.sb.WriteString("<hr>")
	case *Table:
		r.block("table", "", n.Children)
	case *TableRow:
		r.block("tr", "", n.Children)
	case *TableCell:
		r.cell(n)
	}
}

func (r *htmlRenderer) children(nodes []Node) {
	for _, child := range nodes {
		r.node(child)
	}
}

// block writes <tag attrs>children</tag>; attrs carries its own leading space.
func (r *htmlRenderer) block(tag, attrs string, children []Node) {
	r.sb.WriteString("<" + tag + attrs + ">")
	r.children(children)
	r.sb.WriteString("</" + tag + ">")
}

func (r *htmlRenderer) heading(h *Heading) {
	depth, ok := h.Depth()
	if !ok {
		r.block("div", "", h.Children)
		return
	}
	r.block("h"+strconv.Itoa(depth), attr("id", r.ids[h]), h.Children)
}

func (r *htmlRenderer) list(l *List) {
	tag := "ul"
	attrs := ""
	if l.Ordered() {
		tag = "ol"
		if l.Start > 1 {
			attrs = attr("start", strconv.Itoa(l.Start))
		}
	}
	r.block(tag, attrs, l.Children)
}

func (r *htmlRenderer) link(l *Link) {
	attrs := attr("href", l.Href())

	target, rel := l.Target, l.Rel
	if l.NewTab {
		if target == "" {
			target = "_blank"
		}
		if rel == "" {
			rel = "noopener noreferrer"
		}
	}
	if target != "" {
		attrs += attr("target", target)
	}
	if rel != "" {
		attrs += attr("rel", rel)
	}
	r.block("a", attrs, l.Children)
}

func (r *htmlRenderer) code(c *Code) {
	attrs := ""
	if c.Language != "" {
		attrs = attr("class", "language-"+c.Language)
	}
	r.sb.WriteString("<pre><code" + attrs + ">")
	r.sb.WriteString(html.EscapeString(codeText(c)))
	r.sb.WriteString("</code></pre>")
}

func (r *htmlRenderer) image(src, alt string) {
	r.sb.WriteString("<img" + attr("src", src) + attr("alt", alt) + ">")
}

func (r *htmlRenderer) cell(c *TableCell) {
	tag := "td"
	if c.HeaderState != 0 {
		tag = "th"
	}
	attrs := ""
	if c.ColSpan > 1 {
		attrs += attr("colspan", strconv.Itoa(c.ColSpan))
	}
	if c.RowSpan > 1 {
		attrs += attr("rowspan", strconv.Itoa(c.RowSpan))
	}
	r.block(tag, attrs, c.Children)
}

func (r *htmlRenderer) text(t *Text) {
	out := html.EscapeString(t.Text)
	for _, w := range textWrappers {
		if t.Format.Has(w.flag) {
			out = "<" + w.tag + ">" + out + "</" + w.tag + ">"
		}
	}
	if open := ParseStyle(t.Style).BuildAnnotatedOpenTag(); open != "" {
		out = open + out + "</span>"
	}
	r.sb.WriteString(out)
}

// codeText flattens a code block to its literal source.
func codeText(n Node) string {
	var sb strings.Builder
	Walk(n, func(node Node) bool {
		switch node := node.(type) {
		case *Text:
			sb.WriteString(node.Text)
		case *LineBreak:
			sb.WriteString("\n")
		case *Tab:
			sb.WriteString("\t")
		}
		return true
	})
	return sb.String()
}

func attr(name, value string) string {
	return " " + name + `="` + html.EscapeString(value) + `"`
}
