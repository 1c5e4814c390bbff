package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Project element styles
var (
	ProfileStyle = lipgloss.NewStyle().
			Foreground(ProfileColor).
			Bold(true)

	EnabledStyle = lipgloss.NewStyle().
			Foreground(PackageColor).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	VersionStyle = lipgloss.NewStyle().
			Foreground(VersionColor)

	TemplateStyle = lipgloss.NewStyle().
			Foreground(TemplateColor)

	// CommandStyle renders subprocess command lines
	CommandStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Indicators
var (
	SuccessIndicator   = SuccessStyle.Render("✓")
	ErrorIndicator     = ErrorStyle.Render("✗")
	WarningIndicator   = WarningStyle.Render("!")
	InfoIndicator      = InfoStyle.Render("•")
	PendingIndicator   = MutedStyle.Render("○")
	CheckedIndicator   = EnabledStyle.Render("[x]")
	UncheckedIndicator = DisabledStyle.Render("[ ]")
)

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func Italic(s string) string {
	return lipgloss.NewStyle().Italic(true).Render(s)
}

func Underline(s string) string {
	return lipgloss.NewStyle().Underline(true).Render(s)
}
