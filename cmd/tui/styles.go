package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// WarningStyle for warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	// SuccessStyle for confirmations.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// ProfitStyle and LossStyle color the total profit.
	ProfitStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	LossStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// RenderNotice styles a notice by its level.
func RenderNotice(notice trading.Notice) string {
	switch notice.Level {
	case trading.LevelSuccess:
		return SuccessStyle.Render(notice.Text)
	case trading.LevelWarning:
		return WarningStyle.Render(notice.Text)
	case trading.LevelError:
		return ErrorStyle.Render(notice.Text)
	default:
		return notice.Text
	}
}

// RenderProfit renders the total, green when non-negative.
func RenderProfit(view *trading.PositionView) string {
	if view.InProfit() {
		return ProfitStyle.Render(view.ProfitLabel())
	}

	return LossStyle.Render(view.ProfitLabel())
}
