package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#10B981") // Emerald
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ChipOn = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	ChipOff = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgCard).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Secondary).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)

	BannerError = lipgloss.NewStyle().
			Foreground(Error).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Error).
			PaddingLeft(1)

	BannerWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Warning).
			PaddingLeft(1)

	BannerInfo = lipgloss.NewStyle().
			Foreground(Secondary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Secondary).
			PaddingLeft(1)
)
