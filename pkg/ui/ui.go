// Package ui renders command results as rich terminal output, plain text,
// JSON or YAML. Commands build a view from pkg/ui/display and hand it to
// the Renderer picked by NewRenderer.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/pyproject/pkg/ui/json"
	"github.com/arthur-debert/pyproject/pkg/ui/terminal"
	"github.com/arthur-debert/pyproject/pkg/ui/text"
	"github.com/arthur-debert/pyproject/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a display view
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message, which may carry [tag] markup
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto detects the
// terminal when output is a file and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
