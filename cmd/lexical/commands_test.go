package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio-content-be/pkg/lexical"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{"root":{"type":"root","children":[
	{"type":"heading","tag":"h2","children":[{"type":"text","text":"Intro"}]},
	{"type":"paragraph","children":[{"type":"text","text":"Hi"}]}
]}}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, sampleDocument, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "<h2 id=\"intro\">Intro</h2><p>Hi</p>\n", out)

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))
	out, err = run(t, "", "render", "--sanitize", path)
	require.NoError(t, err)
	assert.Contains(t, out, `id="intro"`)
}

func TestRenderCommandErrors(t *testing.T) {
	_, err := run(t, "{not json", "render", "-")
	assert.Error(t, err)

	_, err = run(t, "", "render", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "", "render")
	assert.Error(t, err)
}

func TestTocCommand(t *testing.T) {
	out, err := run(t, sampleDocument, "toc", "--json", "-")
	require.NoError(t, err)

	var entries []lexical.TocEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []lexical.TocEntry{{Title: "Intro", URL: "#intro", Depth: 2}}, entries)

	out, err = run(t, `<h1 id="top">Top</h1><h3 id="deep">Deep</h3>`, "toc", "--markup", "-")
	require.NoError(t, err)
	assert.Equal(t, "Top #top\n    Deep #deep\n", out)

	out, err = run(t, `{"root":{"children":[]}}`, "toc", "-")
	require.NoError(t, err)
	assert.Equal(t, "no headings\n", out)
}

func TestMarkdownAndSlugCommands(t *testing.T) {
	out, err := run(t, sampleDocument, "markdown", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "## Intro")
	assert.Contains(t, out, "Hi")

	out, err = run(t, "", "slug", "Hello", "World!")
	require.NoError(t, err)
	assert.Equal(t, "hello-world\n", out)
}
