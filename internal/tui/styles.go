package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ionenergy/ionctl/internal/notify"
)

// Color palette.
const (
	colorAccent  = lipgloss.Color("39")
	colorSubtle  = lipgloss.Color("241")
	colorOK      = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorInfo    = lipgloss.Color("75")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	FocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	InfoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	ActiveTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true).Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().Foreground(colorSubtle).Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(0, 1)

	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// NotificationStyle returns the style for a notification of the given kind.
func NotificationStyle(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.KindSuccess:
		return SuccessStyle
	case notify.KindWarning:
		return WarningStyle
	case notify.KindError:
		return CriticalStyle
	default:
		return InfoStyle
	}
}
