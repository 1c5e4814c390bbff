// Package markdown renders markdown for the terminal with glamour. It
// backs help topics and profile descriptions.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer uses glamour for rich markdown rendering. It satisfies
// topics.Renderer.
type Renderer struct {
	Style string // "dark", "light", "notty", "auto", or a path to a style file
	Width int    // word wrap width, 0 for glamour's default
}

// New creates a renderer with automatic style detection
func New() *Renderer {
	return &Renderer{Style: "auto"}
}

func (r *Renderer) options() []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		opts = append(opts, glamour.WithStylePath(r.Style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	return opts
}

// Render converts markdown content. Other formats, and content glamour
// fails on, are returned unchanged.
func (r *Renderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	tr, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}

// Lines renders description lines as one markdown block, trimmed of the
// blank margins glamour adds.
func (r *Renderer) Lines(lines []string) string {
	text := strings.Join(lines, "\n")
	return strings.Trim(r.Render(text, ".md"), "\n")
}
