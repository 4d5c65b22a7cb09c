package lexical

// Document is a decoded Lexical editor state. A nil Root renders as an empty document.
type Document struct {
	Root *Root
}

// Node is one variant of the rich-text tree. Concrete types are the pointer
// types declared below; anything the decoder does not recognize becomes *Unknown.
type Node interface {
	Kind() Kind
}

// Kind discriminates the Node variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindRoot
	KindText
	KindParagraph
	KindQuote
	KindHeading
	KindList
	KindListItem
	KindLink
	KindLineBreak
	KindTab
	KindCode
	KindImage
	KindUpload
	KindHorizontalRule
	KindTable
	KindTableRow
	KindTableCell
)

// Format is the text format bitmask stored on text nodes.
type Format int

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
	FormatHighlight
)

// Has reports whether every bit of flag is set.
func (f Format) Has(flag Format) bool {
	return f&flag == flag
}

// branch holds the ordered children of a container node.
type branch struct {
	Children []Node
}

// ChildNodes returns the node's children in document order.
func (b *branch) ChildNodes() []Node {
	return b.Children
}

// Parent is implemented by every variant that can hold children.
type Parent interface {
	Node
	ChildNodes() []Node
}

type Root struct{ branch }

// Paragraph carries the editor's block alignment ("center", "right", ...);
// the HTML renderer ignores it, the Markdown export keeps it.
type Paragraph struct {
	branch
	Align string
}

type Quote struct{ branch }

// Heading carries its tag verbatim ("h1".."h6"); Depth validates it.
type Heading struct {
	branch
	Tag string
}

// Depth parses the trailing digit of the tag. ok is false outside 1..6.
func (h *Heading) Depth() (depth int, ok bool) {
	if len(h.Tag) != 2 || (h.Tag[0] != 'h' && h.Tag[0] != 'H') {
		return 0, false
	}
	d := int(h.Tag[1] - '0')
	if d < 1 || d > 6 {
		return 0, false
	}
	return d, true
}

type List struct {
	branch
	Tag      string // "ol" | "ul"
	ListType string // "number" | "bullet" | "check"
	Start    int
}

// Ordered reports whether the list renders as <ol>.
func (l *List) Ordered() bool {
	switch l.Tag {
	case "ol":
		return true
	case "ul":
		return false
	}
	return l.ListType == "number"
}

type ListItem struct {
	branch
	Checked *bool // set only on check lists
	Value   int
}

type Link struct {
	branch
	URL    string
	Target string
	Rel    string
	NewTab bool
}

// Href returns the link target, "#" when absent.
func (l *Link) Href() string {
	if l.URL == "" {
		return "#"
	}
	return l.URL
}

type Code struct {
	branch
	Language string
}

type Table struct{ branch }

type TableRow struct{ branch }

type TableCell struct {
	branch
	HeaderState int
	ColSpan     int
	RowSpan     int
}

// Unknown keeps the original type name; it renders its children only.
type Unknown struct {
	branch
	Type string
}

type Text struct {
	Text   string
	Format Format
	Style  string
}

type LineBreak struct{}

type Tab struct{}

type HorizontalRule struct{}

// Image is an inline image node.
type Image struct {
	Src     string
	URL     string
	Alt     string
	AltText string
}

// Source resolves src -> url.
func (i *Image) Source() string {
	return firstNonEmpty(i.Src, i.URL)
}

// Description resolves alt -> altText -> "Image".
func (i *Image) Description() string {
	return firstNonEmpty(i.Alt, i.AltText, defaultAlt)
}

// UploadValue is the populated media document of an upload node.
type UploadValue struct {
	URL     string
	Src     string
	Alt     string
	AltText string
}

// Upload is a CMS media reference; the media fields live under Value.
type Upload struct {
	Value   UploadValue
	Src     string
	Alt     string
	AltText string
}

// Source resolves value.url -> value.src -> src.
func (u *Upload) Source() string {
	return firstNonEmpty(u.Value.URL, u.Value.Src, u.Src)
}

// Description resolves value.alt -> value.altText -> alt -> altText -> "Image".
func (u *Upload) Description() string {
	return firstNonEmpty(u.Value.Alt, u.Value.AltText, u.Alt, u.AltText, defaultAlt)
}

const defaultAlt = "Image"

func (*Root) Kind() Kind           { return KindRoot }
func (*Paragraph) Kind() Kind      { return KindParagraph }
func (*Quote) Kind() Kind          { return KindQuote }
func (*Heading) Kind() Kind        { return KindHeading }
func (*List) Kind() Kind           { return KindList }
func (*ListItem) Kind() Kind       { return KindListItem }
func (*Link) Kind() Kind           { return KindLink }
func (*Code) Kind() Kind           { return KindCode }
func (*Table) Kind() Kind          { return KindTable }
func (*TableRow) Kind() Kind       { return KindTableRow }
func (*TableCell) Kind() Kind      { return KindTableCell }
func (*Unknown) Kind() Kind        { return KindUnknown }
func (*Text) Kind() Kind           { return KindText }
func (*LineBreak) Kind() Kind      { return KindLineBreak }
func (*Tab) Kind() Kind            { return KindTab }
func (*HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (*Image) Kind() Kind          { return KindImage }
func (*Upload) Kind() Kind         { return KindUpload }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
