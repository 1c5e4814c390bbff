// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/arthur-debert/pyproject/pkg/ui/display"
	"github.com/arthur-debert/pyproject/pkg/ui/markdown"
)

// Painter applies the lipgloss styles from pkg/style
type Painter struct {
	markdown *markdown.Renderer
}

func (p Painter) Title(s string) string   { return style.SubtitleStyle.Render(s) }
func (p Painter) Profile(s string) string { return style.ProfileStyle.Render(s) }
func (p Painter) Path(s string) string    { return style.PathStyle.Render(s) }
func (p Painter) Muted(s string) string   { return style.MutedStyle.Render(s) }

func (p Painter) Warning(s string) string {
	return style.WarningIndicator + " " + style.WarningStyle.Render(s)
}

func (p Painter) Package(o options.Option) string {
	if !o.Enabled {
		return style.UncheckedIndicator + " " + style.DisabledStyle.Render(o.Label())
	}
	label := style.EnabledStyle.Render(o.Name)
	if o.Version != "" {
		label += style.VersionStyle.Render(o.Version)
	}
	return style.CheckedIndicator + " " + label
}

func (p Painter) Step(s style.Step) string {
	return style.RenderStep(s)
}

func (p Painter) Description(lines []string) string {
	if p.markdown == nil {
		return strings.Join(lines, "\n")
	}
	return p.markdown.Lines(lines)
}

// Renderer provides rich terminal output using lipgloss and glamour
type Renderer struct {
	output  io.Writer
	painter Painter
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output:  w,
		painter: Painter{markdown: markdown.New()},
	}, nil
}

// RenderResult renders a display view with styling
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Write(r.output, r.painter, result)
}

// RenderError renders an error with its code dimmed, then any captured
// subprocess output and partial project warning below it.
func (r *Renderer) RenderError(err error) error {
	line := style.ErrorIndicator + " " + style.ErrorStyle.Render(message(err))
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line += " " + style.MutedStyle.Render("("+string(code)+")")
	}
	if _, werr := fmt.Fprintln(r.output, line); werr != nil {
		return werr
	}
	if out := display.CapturedOutput(err); out != "" {
		if _, werr := fmt.Fprintln(r.output, r.painter.Muted(out)); werr != nil {
			return werr
		}
	}
	if warning := errors.GetDetailString(err, "warning"); warning != "" {
		_, werr := fmt.Fprintln(r.output, r.painter.Warning(warning))
		return werr
	}
	return nil
}

// RenderMessage renders a message, expanding [tag] markup
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}

// message drops the "[CODE] " prefix PyProjectError puts in Error()
func message(err error) string {
	text := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		text = strings.TrimPrefix(text, "["+string(code)+"] ")
	}
	return text
}
