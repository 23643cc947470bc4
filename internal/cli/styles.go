// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FAFFF")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Stage group colors used wherever a stage is rendered.
var groupStyles = map[stage.Group]lipgloss.Style{
	stage.GroupTodo:       lipgloss.NewStyle().Foreground(WarningColor),
	stage.GroupInProgress: lipgloss.NewStyle().Foreground(PrimaryColor),
	stage.GroupDone:       lipgloss.NewStyle().Foreground(SubtleColor),
}

// StageStyle returns the style for a raw stage value's group.
func StageStyle(raw string) lipgloss.Style {
	return groupStyles[stage.Resolve(raw).Group]
}

// BandStyle returns the style for a band classification.
func BandStyle(status report.BandStatus) lipgloss.Style {
	switch status {
	case report.StatusLow:
		return WarningStyle
	case report.StatusHigh:
		return ErrorStyle
	default:
		return SuccessStyle
	}
}
