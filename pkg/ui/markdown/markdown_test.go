// pkg/ui/markdown/markdown_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: glamour
// PURPOSE: Test markdown rendering fallbacks

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNonMarkdownUnchanged(t *testing.T) {
	r := New()
	assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))
}

func TestRenderMarkdown(t *testing.T) {
	// notty keeps inline markers and indents blocks by the document margin
	r := &Renderer{Style: "notty", Width: 60}
	in := "# Title\n\nSome **bold** words."
	out := r.Render(in, ".md")
	assert.NotEqual(t, in, out)
	assert.Contains(t, out, "  # Title")
	assert.Contains(t, out, "Some **bold** words.")
}

func TestLinesTrimmed(t *testing.T) {
	r := &Renderer{Style: "notty"}
	out := r.Lines([]string{"Numbers and frames.", "Notebooks optional."})
	assert.Contains(t, out, "Numbers and frames.")
	assert.NotRegexp(t, `^\n`, out)
	assert.NotRegexp(t, `\n$`, out)
}
