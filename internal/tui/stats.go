// Package tui renders the pipeline statistics dashboard as an
// interactive terminal view.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/report"
)

const defaultBarWidth = 40

// StatsModel is the dashboard over one computed report.
type StatsModel struct {
	rep     report.Report
	summary report.Summary
	bars    []progress.Model
	width   int
}

// NewStatsModel builds the dashboard for a report. The view is static:
// stats are computed before the program starts and only resize events
// change the rendering.
func NewStatsModel(rep report.Report, summary report.Summary) StatsModel {
	bars := make([]progress.Model, len(rep.Stages))
	for i, st := range rep.Stages {
		bar := progress.New(progress.WithSolidFill(string(barColor(st.Status))))
		bar.Width = defaultBarWidth
		bar.ShowPercentage = false
		bars[i] = bar
	}
	return StatsModel{rep: rep, summary: summary, bars: bars}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.bars {
			m.bars[i].Width = min(msg.Width-40, defaultBarWidth)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("영업 파이프라인 현황"))
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("전체 %d건", m.rep.Total)))
	b.WriteString("\n\n")

	for i, st := range m.rep.Stages {
		label := lipgloss.NewStyle().Width(12).Render(st.Label)
		bar := m.bars[i].ViewAs(st.Rate / 100)
		line := fmt.Sprintf("%s %s %3d건 %5.1f%%  %s",
			label, bar, st.Count, st.Rate,
			cli.BandStyle(st.Status).Render(st.Message))
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rep.Extras) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.SubtleStyle.Render("미분류 단계"))
		b.WriteString("\n")
		for _, st := range m.rep.Extras {
			b.WriteString(fmt.Sprintf("  %s: %d건\n", st.Label, st.Count))
		}
	}

	b.WriteString("\n")
	b.WriteString(cli.TitleStyle.Render("고객 요약"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("전체 %d · 활성 %d · 관리 %d · 비활성 %d\n",
		m.summary.Total, m.summary.Active, m.summary.Managed, m.summary.Inactive))
	b.WriteString(fmt.Sprintf("계약 만료 임박 %d · 영업 기회 보유 %d\n",
		m.summary.ExpiringSoon, m.summary.WithOpportunity))

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("q: 종료"))
	b.WriteString("\n")

	return b.String()
}

func barColor(status report.BandStatus) lipgloss.Color {
	switch status {
	case report.StatusLow:
		return cli.WarningColor
	case report.StatusHigh:
		return cli.ErrorColor
	default:
		return cli.SuccessColor
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(rep report.Report, summary report.Summary) error {
	_, err := tea.NewProgram(NewStatsModel(rep, summary), tea.WithAltScreen()).Run()
	return err
}
