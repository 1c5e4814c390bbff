package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type markupRule struct {
	tag     string
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// MarkupParser handles parsing and rendering of [tag]...[/tag] markup
type MarkupParser struct {
	rules []markupRule
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{}
	styles := map[string]lipgloss.Style{
		"title":     TitleStyle,
		"subtitle":  SubtitleStyle,
		"success":   SuccessStyle,
		"error":     ErrorStyle,
		"warning":   WarningStyle,
		"info":      InfoStyle,
		"code":      CodeStyle,
		"path":      PathStyle,
		"muted":     MutedStyle,
		"bold":      lipgloss.NewStyle().Bold(true),
		"italic":    lipgloss.NewStyle().Italic(true),
		"underline": lipgloss.NewStyle().Underline(true),

		"profile":  ProfileStyle,
		"enabled":  EnabledStyle,
		"disabled": DisabledStyle,
		"version":  VersionStyle,
		"template": TemplateStyle,
		"command":  CommandStyle,
	}
	tags := make([]string, 0, len(styles))
	for tag := range styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		p.AddStyle(tag, styles[tag])
	}
	return p
}

// Render processes markup text and returns styled output. Nested tags are
// resolved innermost first by repeating until nothing changes.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for _, rule := range p.rules {
			rule := rule
			result = rule.pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := rule.pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				return rule.style.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// AddStyle registers or replaces the style for a tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	rule := markupRule{
		tag:     tag,
		pattern: regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`),
		style:   style,
	}
	for i := range p.rules {
		if p.rules[i].tag == tag {
			p.rules[i] = rule
			return
		}
	}
	p.rules = append(p.rules, rule)
}

// Strip removes all known tags, leaving the enclosed text
func (p *MarkupParser) Strip(text string) string {
	for _, rule := range p.rules {
		text = strings.ReplaceAll(text, "["+rule.tag+"]", "")
		text = strings.ReplaceAll(text, "[/"+rule.tag+"]", "")
	}
	return text
}

// RenderTemplate substitutes {{key}} variables, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
