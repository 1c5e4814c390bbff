// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
)

// Painter returns view pieces unchanged
type Painter struct{}

func (Painter) Title(s string) string   { return s }
func (Painter) Profile(s string) string { return s }
func (Painter) Path(s string) string    { return s }
func (Painter) Muted(s string) string   { return s }
func (Painter) Warning(s string) string { return "warning: " + s }

func (Painter) Package(o options.Option) string {
	box := "[ ]"
	if o.Enabled {
		box = "[x]"
	}
	return box + " " + o.Label()
}

func (Painter) Step(s style.Step) string {
	return fmt.Sprintf("    %-8s : %-24s : %s", s.Kind, s.Target, style.StepMessage(s))
}

func (Painter) Description(lines []string) string {
	return strings.Join(lines, "\n")
}

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a display view as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Write(r.output, Painter{}, result)
}

// RenderError renders an error as plain text, followed by any captured
// subprocess output and the partial project warning.
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)
	if out := display.CapturedOutput(err); out != "" {
		fmt.Fprintln(&b, out)
	}
	if warning := errors.GetDetailString(err, "warning"); warning != "" {
		fmt.Fprintln(&b, Painter{}.Warning(warning))
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}
