package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/view"
)

func dealWithStage(s string) model.Deal {
	return model.Deal{Name: "deal", Stage: s}
}

func TestPrepareReportDataLayout(t *testing.T) {
	w := &Writer{config: DefaultConfig()}

	records := []view.Record{
		{Deal: dealWithStage("S0")},
		{Deal: dealWithStage("S2")},
		{Deal: dealWithStage("미팅 후 검토")}, // legacy label, lands in Extras
	}
	rep := report.Aggregate(records, report.DefaultBands())
	summary := report.Summary{Total: 3, Active: 2, Inactive: 1}

	values := w.prepareReportData(rep, summary)

	// Headline, summary block, table header, then one row per stage.
	require.Greater(t, len(values), 12)
	assert.Equal(t, "영업 파이프라인 리포트", values[0][0])
	assert.Equal(t, []any{"단계", "건수", "비율(%)", "상태", "비고"}, values[11])
	assert.Len(t, values[12:], len(rep.Stages)+len(rep.Extras))

	// The extras row keeps the raw label so counts stay accountable.
	last := values[len(values)-1]
	assert.Equal(t, "미팅 후 검토", last[0])
	assert.Equal(t, 1, last[1])
}

func TestStageRowFormatsRate(t *testing.T) {
	row := stageRow(report.StageStat{
		Label:   "신규 리드",
		Count:   4,
		Rate:    10.0,
		Status:  report.StatusNormal,
		Message: "적정 범위 내",
	})
	assert.Equal(t, []any{"신규 리드", 4, "10.0", "normal", "적정 범위 내"}, row)
}
