package lexical

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{"root":{"type":"root","children":[
	{"type":"heading","tag":"h1","children":[{"type":"text","text":"Building a "},{"type":"text","text":"Portfolio","format":1}]},
	{"type":"paragraph","children":[{"type":"text","text":"Intro text."}]},
	{"type":"heading","tag":"h2","children":[{"type":"text","text":"Setup"}]},
	{"type":"heading","tag":"h2","children":[]},
	{"type":"customBlock","children":[
		{"type":"heading","tag":"h3","children":[{"type":"text","text":"Setup"}]}
	]},
	{"type":"heading","tag":"h9","children":[{"type":"text","text":"Ignored"}]},
	{"type":"quote","children":[{"type":"text","text":"Setup"}]},
	{"type":"heading","tag":"h2","children":[{"type":"text","text":"  Q&A <draft>  "},{"type":"linebreak"},{"type":"image","src":"/x.png"}]},
	{"type":"list","tag":"ul","children":[{"type":"listitem","children":[
		{"type":"heading","tag":"h4","children":[{"type":"text","text":"Setup 2"}]}
	]}]},
	{"type":"heading","tag":"h2","children":[{"type":"link","url":"/x","children":[{"type":"text","text":"Setup"}]}]}
]}}`

func TestExtractFromASTSimpleDocument(t *testing.T) {
	doc, err := Decode([]byte(`{"root":{"children":[
		{"type":"heading","tag":"h2","children":[{"type":"text","text":"Intro"}]},
		{"type":"paragraph","children":[{"type":"text","text":"Hello","format":1}]}
	]}}`))
	require.NoError(t, err)

	assert.Equal(t, []TocEntry{{Title: "Intro", URL: "#intro", Depth: 2}}, ExtractFromAST(doc))
}

func TestExtractFromASTDuplicateHeadings(t *testing.T) {
	doc, err := Decode([]byte(`{"root":{"children":[
		{"type":"heading","tag":"h2","children":[{"type":"text","text":"Setup"}]},
		{"type":"heading","tag":"h2","children":[{"type":"text","text":"Setup"}]}
	]}}`))
	require.NoError(t, err)

	assert.Equal(t, []TocEntry{
		{Title: "Setup", URL: "#setup", Depth: 2},
		{Title: "Setup", URL: "#setup-2", Depth: 2},
	}, ExtractFromAST(doc))
}

func TestExtractFromASTSampleDocument(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	want := []TocEntry{
		{Title: "Building a Portfolio", URL: "#building-a-portfolio", Depth: 1},
		{Title: "Setup", URL: "#setup", Depth: 2},
		// the empty h2 in between consumed "heading"
		{Title: "Setup", URL: "#setup-2", Depth: 3},
		{Title: "Q&A <draft>", URL: "#qa", Depth: 2},
		// "Setup 2" collides with the slug already taken above
		{Title: "Setup 2", URL: "#setup-2-2", Depth: 4},
		{Title: "Setup", URL: "#setup-3", Depth: 2},
	}
	assert.Equal(t, want, ExtractFromAST(doc))
}

func TestExtractFromASTEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{name: "nil document", doc: nil},
		{name: "nil root", doc: &Document{}},
		{name: "no headings", doc: &Document{Root: &Root{branch: branch{Children: []Node{&Paragraph{}}}}}},
		{name: "unknown node without headings", doc: &Document{Root: &Root{branch: branch{Children: []Node{
			&Unknown{Type: "customBlock", branch: branch{Children: []Node{&Text{Text: "X"}}}},
		}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFromAST(tt.doc)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

var headingIDPattern = regexp.MustCompile(`<h[1-6] id="([^"]*)"`)

func TestRenderAndExtractAgreeOnSlugs(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	rendered := Render(doc)

	var renderedIDs []string
	for _, m := range headingIDPattern.FindAllStringSubmatch(rendered, -1) {
		renderedIDs = append(renderedIDs, m[1])
	}

	var anchorIDs []string
	for _, a := range AssignAnchors(doc.Root) {
		anchorIDs = append(anchorIDs, a.Slug)
	}
	assert.Equal(t, anchorIDs, renderedIDs)

	// every TOC url points at an id the renderer emitted
	for _, entry := range ExtractFromAST(doc) {
		assert.Contains(t, rendered, `id="`+entry.URL[1:]+`"`)
	}
}

func TestExtractFromMarkupMatchesAST(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	fromMarkup, err := ExtractFromMarkupString(Render(doc))
	require.NoError(t, err)

	assert.Equal(t, ExtractFromAST(doc), fromMarkup)
}

func TestExtractFromMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []TocEntry
	}{
		{
			name:   "headings in document order",
			markup: `<h1 id="top">Top</h1><p>x</p><section><h3 id="deep">Deep <em>one</em></h3></section><h2 id="next">Next</h2>`,
			want: []TocEntry{
				{Title: "Top", URL: "#top", Depth: 1},
				{Title: "Deep one", URL: "#deep", Depth: 3},
				{Title: "Next", URL: "#next", Depth: 2},
			},
		},
		{
			name:   "headings without id are skipped",
			markup: `<h2>No anchor</h2><h2 id="">Blank</h2><h2 id="kept">Kept</h2>`,
			want:   []TocEntry{{Title: "Kept", URL: "#kept", Depth: 2}},
		},
		{
			name:   "headings without text are skipped",
			markup: `<h2 id="empty">  </h2><h2 id="img"><img src="/a.png"></h2>`,
			want:   []TocEntry{},
		},
		{
			name:   "ids are not re-slugified",
			markup: `<h4 id="Custom_ID">  Some Title  </h4>`,
			want:   []TocEntry{{Title: "Some Title", URL: "#Custom_ID", Depth: 4}},
		},
		{
			name:   "entities are decoded",
			markup: `<h2 id="qa">Q&amp;A</h2>`,
			want:   []TocEntry{{Title: "Q&A", URL: "#qa", Depth: 2}},
		},
		{
			name:   "no headings",
			markup: `<p>just text</p>`,
			want:   []TocEntry{},
		},
		{
			name:   "empty markup",
			markup: ``,
			want:   []TocEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFromMarkupString(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
