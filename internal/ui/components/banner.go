package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/ui/theme"
)

// BannerKind selects a banner's colour.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerWarning
	BannerError
)

// Banner renders an inline message. An empty message renders nothing.
func Banner(kind BannerKind, msg string, width int) string {
	if msg == "" {
		return ""
	}
	style := theme.BannerInfo
	switch kind {
	case BannerWarning:
		style = theme.BannerWarning
	case BannerError:
		style = theme.BannerError
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(msg)
}

// Card wraps content in a bordered panel. A focused card uses the primary
// border colour.
func Card(content string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	return style.Width(max(width-2, 10)).Render(content)
}

// Tabs renders a row of tab labels with the active one highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		if i == active {
			parts = append(parts, theme.TabActive.Render(l))
		} else {
			parts = append(parts, theme.TabInactive.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
