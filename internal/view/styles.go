package view

import (
	"github.com/charmbracelet/lipgloss"

	"picon/internal/app"
)

var (
	upColor     = lipgloss.Color("10")
	downColor   = lipgloss.Color("9")
	titleColor  = lipgloss.Color("12")
	mutedColor  = lipgloss.Color("245")
	highlightBG = lipgloss.Color("236")
)

var (
	tabStyle        = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor)
	activeTabStyle  = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(titleColor).Underline(true)
	refreshStyle    = lipgloss.NewStyle().Foreground(titleColor)
	upStyle         = lipgloss.NewStyle().Foreground(upColor)
	downStyle       = lipgloss.NewStyle().Foreground(downColor)
	headerUpStyle   = lipgloss.NewStyle().Bold(true).Foreground(upColor)
	headerDownStyle = lipgloss.NewStyle().Bold(true).Foreground(downColor)
	activeColStyle  = lipgloss.NewStyle().Underline(true)
	markStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle       = lipgloss.NewStyle().Foreground(mutedColor)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(titleColor)

	noticeBase = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0"))
)

func changeStyle(up bool) lipgloss.Style {
	if up {
		return upStyle
	}
	return downStyle
}

func headerStyle(up bool) lipgloss.Style {
	if up {
		return headerUpStyle
	}
	return headerDownStyle
}

func noticeStyle(level app.Level) lipgloss.Style {
	switch level {
	case app.LevelSuccess:
		return noticeBase.Background(lipgloss.Color("2"))
	case app.LevelWarn:
		return noticeBase.Background(lipgloss.Color("3"))
	case app.LevelDanger:
		return noticeBase.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15"))
	default:
		return noticeBase.Background(lipgloss.Color("6"))
	}
}
