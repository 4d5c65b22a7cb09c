package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses Lexical editor JSON into a typed Document.
// Both the stored shape {"root": {...}} and a bare node are accepted.
// Only syntactically invalid JSON is an error; every missing or
// mistyped field falls back to its zero value.
func Decode(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Document{}, nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return FromValue(raw), nil
}

// FromValue converts an already unmarshaled JSON value (map[string]interface{})
// into a Document.
func FromValue(v interface{}) *Document {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return &Document{}
	}

	if rootVal, present := obj["root"]; present {
		rootObj, ok := rootVal.(map[string]interface{})
		if !ok {
			return &Document{}
		}
		obj = rootObj
	}

	switch n := decodeNode(obj).(type) {
	case *Root:
		return &Document{Root: n}
	case *Unknown:
		// Untyped wrapper objects are treated as the root itself.
		if n.Type == "" {
			return &Document{Root: &Root{branch: n.branch}}
		}
		return &Document{Root: &Root{branch: branch{Children: []Node{n}}}}
	default:
		return &Document{Root: &Root{branch: branch{Children: []Node{n}}}}
	}
}

func decodeNode(obj map[string]interface{}) Node {
	typ := getString(obj, "type")

	switch typ {
	case "text", "code-highlight":
		// text leaves never carry children
		return &Text{
			Text:   getString(obj, "text"),
			Format: Format(getInt(obj, "format")),
			Style:  getString(obj, "style"),
		}
	case "root":
		return &Root{branch: decodeChildren(obj)}
	case "paragraph":
		return &Paragraph{branch: decodeChildren(obj), Align: getString(obj, "format")}
	case "quote":
		return &Quote{branch: decodeChildren(obj)}
	case "heading":
		return &Heading{branch: decodeChildren(obj), Tag: getString(obj, "tag")}
	case "list":
		return &List{
			branch:   decodeChildren(obj),
			Tag:      getString(obj, "tag"),
			ListType: getString(obj, "listType"),
			Start:    getInt(obj, "start"),
		}
	case "listitem":
		item := &ListItem{branch: decodeChildren(obj), Value: getInt(obj, "value")}
		if checked, ok := obj["checked"].(bool); ok {
			item.Checked = &checked
		}
		return item
	case "link", "autolink":
		return decodeLink(obj)
	case "linebreak":
		return &LineBreak{}
	case "tab":
		return &Tab{}
	case "code":
		return &Code{branch: decodeChildren(obj), Language: getString(obj, "language")}
	case "image":
		return &Image{
			Src:     getString(obj, "src"),
			URL:     getString(obj, "url"),
			Alt:     getString(obj, "alt"),
			AltText: getString(obj, "altText"),
		}
	case "upload":
		upload := &Upload{
			Src:     getString(obj, "src"),
			Alt:     getString(obj, "alt"),
			AltText: getString(obj, "altText"),
		}
		if value, ok := obj["value"].(map[string]interface{}); ok {
			upload.Value = UploadValue{
				URL:     getString(value, "url"),
				Src:     getString(value, "src"),
				Alt:     getString(value, "alt"),
				AltText: getString(value, "altText"),
			}
		}
		return upload
	case "horizontalrule":
		return &HorizontalRule{}
	case "table":
		return &Table{branch: decodeChildren(obj)}
	case "tablerow":
		return &TableRow{branch: decodeChildren(obj)}
	case "tablecell":
		return &TableCell{
			branch:      decodeChildren(obj),
			HeaderState: getInt(obj, "headerState"),
			ColSpan:     getInt(obj, "colSpan"),
			RowSpan:     getInt(obj, "rowSpan"),
		}
	default:
		return &Unknown{branch: decodeChildren(obj), Type: typ}
	}
}

func decodeLink(obj map[string]interface{}) *Link {
	link := &Link{
		branch: decodeChildren(obj),
		URL:    getString(obj, "url"),
		Target: getString(obj, "target"),
		Rel:    getString(obj, "rel"),
	}

	// Payload stores link attributes under "fields".
	if fields, ok := obj["fields"].(map[string]interface{}); ok {
		if link.URL == "" {
			link.URL = getString(fields, "url")
		}
		if newTab, ok := fields["newTab"].(bool); ok {
			link.NewTab = newTab
		}
	}
	return link
}

func decodeChildren(obj map[string]interface{}) branch {
	items, ok := obj["children"].([]interface{})
	if !ok || len(items) == 0 {
		return branch{}
	}

	children := make([]Node, 0, len(items))
	for _, item := range items {
		if child, ok := item.(map[string]interface{}); ok {
			children = append(children, decodeNode(child))
		}
	}
	return branch{Children: children}
}

func getString(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

// getInt accepts JSON numbers only; alignment strings stored under the
// same key on block nodes read as 0.
func getInt(obj map[string]interface{}, key string) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
