package lexical

import (
	"regexp"
	"strconv"
	"strings"
)

const fallbackSlug = "heading"

var (
	markupTagPattern  = regexp.MustCompile(`<[^>]*>`)
	slugStripPattern  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugJoinerPattern = regexp.MustCompile(`[\s-]+`)
)

// Slugify maps text to its lowercase kebab-case base slug.
// It never returns an empty string.
func Slugify(text string) string {
	s := markupTagPattern.ReplaceAllString(text, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugJoinerPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// Slugger hands out slugs that are unique within one document pass.
// The zero value is ready to use. A Slugger is not safe for concurrent use;
// each render or extraction owns its own.
type Slugger struct {
	counts map[string]int
	used   map[string]struct{}
}

// NewSlugger returns an empty registry.
func NewSlugger() *Slugger {
	return &Slugger{
		counts: make(map[string]int),
		used:   make(map[string]struct{}),
	}
}

// Generate returns the slug for text: the base slug on its first occurrence,
// then base-2, base-3 and so on.
func (s *Slugger) Generate(text string) string {
	if s.counts == nil {
		s.counts = make(map[string]int)
		s.used = make(map[string]struct{})
	}

	base := Slugify(text)
	n := s.counts[base]

	slug := base
	if n > 0 {
		slug = suffixed(base, n+1)
	}
	// "Foo 2" may already have claimed foo-2.
	for s.taken(slug) {
		n++
		slug = suffixed(base, n+1)
	}

	s.counts[base] = n + 1
	s.used[slug] = struct{}{}
	return slug
}

func (s *Slugger) taken(slug string) bool {
	_, ok := s.used[slug]
	return ok
}

func suffixed(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}
