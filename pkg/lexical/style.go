package lexical

import (
	"html"
	"strings"
)

// StyleMap represents parsed inline CSS declarations
type StyleMap map[string]string

// styleWhitelist lists the properties carried into rendered output, in output order.
var styleWhitelist = []string{"color", "background-color", "text-transform"}

// ParseStyle parses a CSS style string into a map
// Example: "color: #F97316; background-color: #BFDBFE;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	for _, part := range strings.Split(styleStr, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if k != "" && v != "" {
			styles[k] = v
		}
	}
	return styles
}

// Declaration joins the whitelisted properties back into a style attribute value.
// Returns empty string if none are present.
func (s StyleMap) Declaration() string {
	var relevant []string
	for _, k := range styleWhitelist {
		if v, ok := s[k]; ok {
			relevant = append(relevant, k+": "+v)
		}
	}
	return strings.Join(relevant, "; ")
}

// BuildAnnotatedOpenTag creates the opening span carrying the whitelisted styles,
// or "" when nothing survives the whitelist.
func (s StyleMap) BuildAnnotatedOpenTag() string {
	decl := s.Declaration()
	if decl == "" {
		return ""
	}
	return `<span style="` + html.EscapeString(decl) + `">`
}
