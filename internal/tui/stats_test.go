package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/view"
)

func buildModel() StatsModel {
	records := []view.Record{
		{Deal: model.Deal{Name: "a", Stage: "S0"}},
		{Deal: model.Deal{Name: "b", Stage: "S2"}},
		{Deal: model.Deal{Name: "c", Stage: "옛날 단계"}},
	}
	rep := report.Aggregate(records, report.DefaultBands())
	return NewStatsModel(rep, report.Summary{Total: 2, Active: 1, Inactive: 1})
}

func TestStatsViewContents(t *testing.T) {
	out := buildModel().View()

	assert.Contains(t, out, "영업 파이프라인 현황")
	assert.Contains(t, out, "전체 3건")
	assert.Contains(t, out, "신규 리드")
	assert.Contains(t, out, "옛날 단계: 1건")
	assert.Contains(t, out, "고객 요약")
}

func TestStatsQuitKeys(t *testing.T) {
	m := buildModel()

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		assert.NotNil(t, cmd, key)
	}

	_, cmd := m.Update(keyMsg("x"))
	assert.Nil(t, cmd)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
