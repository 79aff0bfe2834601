package browser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Release Notes</title>
  <meta name="description" content="What changed in this release">
  <style>body { margin: 0; }</style>
  <script>console.log("ignored");</script>
</head>
<body>
  <h1>Version 2.0</h1>
  <h2>Breaking changes</h2>
  <p>Details here.</p>
  <a href="/changelog">Full changelog</a>
  <a href="https://example.com/docs">Docs</a>
  <a>no href, skipped</a>
</body>
</html>`

func TestAnalyzeMarkup_ExtractsStructure(t *testing.T) {
	doc, err := analyzeMarkup(samplePage)
	require.NoError(t, err)

	assert.Equal(t, "Release Notes", doc.Title)
	assert.Equal(t, "What changed in this release", doc.Description)
	assert.Equal(t, []string{"Version 2.0", "Breaking changes"}, doc.Headings)

	require.Len(t, doc.Links, 2)
	assert.Equal(t, Link{Text: "Full changelog", Href: "/changelog"}, doc.Links[0])
	assert.Equal(t, Link{Text: "Docs", Href: "https://example.com/docs"}, doc.Links[1])
}

func TestAnalyzeMarkup_IgnoresScriptAndStyleText(t *testing.T) {
	doc, err := analyzeMarkup(samplePage)
	require.NoError(t, err)

	for _, heading := range doc.Headings {
		assert.NotContains(t, heading, "console.log")
		assert.NotContains(t, heading, "margin")
	}
}

func TestAnalyzeMarkup_EmptyPage(t *testing.T) {
	doc, err := analyzeMarkup("<html><body></body></html>")
	require.NoError(t, err)

	assert.Empty(t, doc.Title)
	assert.Empty(t, doc.Description)
	assert.Empty(t, doc.Headings)
	assert.Empty(t, doc.Links)
}

func TestAnalyzeMarkup_CapsLinks(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("<html><body>")
	for i := 0; i < maxLinks+50; i++ {
		fmt.Fprintf(&builder, `<a href="/page-%d">link %d</a>`, i, i)
	}
	builder.WriteString("</body></html>")

	doc, err := analyzeMarkup(builder.String())
	require.NoError(t, err)
	assert.Len(t, doc.Links, maxLinks)
}

func TestAnalyzeMarkup_FirstTitleWins(t *testing.T) {
	doc, err := analyzeMarkup("<html><head><title>First</title><title>Second</title></head></html>")
	require.NoError(t, err)
	assert.Equal(t, "First", doc.Title)
}
