package report

import (
	"testing"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/stage"
	"github.com/karyhub/dealflow/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithStages(stages ...string) []view.Record {
	out := make([]view.Record, len(stages))
	for i, s := range stages {
		out[i] = view.Record{Deal: model.Deal{ID: string(rune('a' + i)), Stage: s}}
	}
	return out
}

func TestAggregateCountsSumToTotal(t *testing.T) {
	records := recordsWithStages("S0", "상담중", "S6_complete", "견적", "알수없는단계", "재컨택", "S0")
	rep := Aggregate(records, DefaultBands())

	sum := 0
	for _, st := range rep.Stages {
		sum += st.Count
	}
	for _, st := range rep.Extras {
		sum += st.Count
	}
	assert.Equal(t, rep.Total, sum)
	assert.Equal(t, len(records), rep.Total)
}

func TestAggregateAliasedStagesCountTogether(t *testing.T) {
	records := recordsWithStages("S5", "S5_complete", "계약 완료", "완료")
	rep := Aggregate(records, DefaultBands())

	for _, st := range rep.Stages {
		if st.Code == stage.S5 {
			assert.Equal(t, 4, st.Count)
			assert.InDelta(t, 100.0, st.Rate, 0.001)
		} else {
			assert.Equal(t, 0, st.Count)
		}
	}
	assert.Empty(t, rep.Extras)
}

func TestAggregateEmptyPipeline(t *testing.T) {
	rep := Aggregate(nil, DefaultBands())
	assert.Equal(t, 0, rep.Total)
	for _, st := range rep.Stages {
		assert.Equal(t, 0.0, st.Rate) // never divides by zero
	}
}

func TestAggregateBandScenario(t *testing.T) {
	// 40 records, 4 in S0: rate 10.0%, band [8,12] → normal.
	records := make([]view.Record, 0, 40)
	for i := 0; i < 4; i++ {
		records = append(records, view.Record{Deal: model.Deal{Stage: "S0"}})
	}
	for i := 0; i < 36; i++ {
		records = append(records, view.Record{Deal: model.Deal{Stage: "S2"}})
	}

	bands := DefaultBands()
	bands[stage.S0] = Band{Min: 8, Max: 12}
	rep := Aggregate(records, bands)

	s0 := rep.Stages[0]
	require.Equal(t, stage.S0, s0.Code)
	assert.InDelta(t, 10.0, s0.Rate, 0.001)
	assert.Equal(t, StatusNormal, s0.Status)
	assert.Equal(t, "적정 범위 내", s0.Message)
}

func TestClassifyBoundariesInclusive(t *testing.T) {
	band := Band{Min: 8, Max: 12}

	status, msg := classify(8.0, band)
	assert.Equal(t, StatusNormal, status)
	assert.Equal(t, "적정 범위 내", msg)

	status, _ = classify(12.0, band)
	assert.Equal(t, StatusNormal, status)

	status, msg = classify(7.5, band)
	assert.Equal(t, StatusLow, status)
	assert.Equal(t, "적정 하한 대비 -0.5%p", msg)

	status, msg = classify(14.25, band)
	assert.Equal(t, StatusHigh, status)
	assert.Equal(t, "적정 상한 대비 +2.2%p", msg)
}

func TestAggregateUnknownStageKeepsOwnLabel(t *testing.T) {
	records := recordsWithStages("임원 보고중", "임원 보고중", "S0")
	rep := Aggregate(records, DefaultBands())

	require.Len(t, rep.Extras, 1)
	assert.Equal(t, "임원 보고중", rep.Extras[0].Label)
	assert.Equal(t, 2, rep.Extras[0].Count)
}

func TestClassifyClient(t *testing.T) {
	active := []model.Contract{{Status: model.ContractActive}}
	expired := []model.Contract{{Status: model.ContractExpired}}

	assert.Equal(t, ClientActive, ClassifyClient(active, 0))
	assert.Equal(t, ClientActive, ClassifyClient(nil, 1)) // open deal only
	assert.Equal(t, ClientActive, ClassifyClient(expired, 2))
	assert.Equal(t, ClientManaged, ClassifyClient(expired, 0))
	assert.Equal(t, ClientInactive, ClassifyClient(nil, 0))
}

func TestOpenDeal(t *testing.T) {
	assert.True(t, OpenDeal(model.Deal{Stage: "상담중"}))
	assert.True(t, OpenDeal(model.Deal{Stage: "재컨택"}))
	assert.False(t, OpenDeal(model.Deal{Stage: "S6_complete"}))
	assert.False(t, OpenDeal(model.Deal{Stage: "계약 완료"}))
}

func TestExpiringSoon(t *testing.T) {
	today := normalize.Today()
	in10 := normalize.FormatDate(today.AddDate(0, 0, 10))
	in45 := normalize.FormatDate(today.AddDate(0, 0, 45))
	past := normalize.FormatDate(today.AddDate(0, 0, -1))

	assert.True(t, ExpiringSoon([]model.Contract{{EndDate: in10}}))
	assert.False(t, ExpiringSoon([]model.Contract{{EndDate: in45}}))
	assert.False(t, ExpiringSoon([]model.Contract{{EndDate: past}}))
	assert.False(t, ExpiringSoon([]model.Contract{{EndDate: "미정"}}))
	assert.True(t, ExpiringSoon([]model.Contract{{EndDate: in45}, {EndDate: in10}}))
}

func TestSummarize(t *testing.T) {
	accounts := []model.Account{
		{ID: "a1", Name: "삼거리식품"},
		{ID: "a2", Name: "한빛유통"},
		{ID: "a3", Name: "동성기계"},
	}
	today := normalize.Today()
	contracts := map[string][]model.Contract{
		"a1": {{Status: model.ContractActive, EndDate: normalize.FormatDate(today.AddDate(0, 0, 20))}},
		"a2": {{Status: model.ContractExpired, EndDate: normalize.FormatDate(today.AddDate(0, 0, -60))}},
	}
	deals := []model.Deal{
		{AccountID: "a3", Stage: "상담중"},
		{AccountID: "a1", Stage: "S6_complete"},
	}

	s := Summarize(accounts, contracts, deals)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)   // a1 active contract, a3 open deal
	assert.Equal(t, 1, s.Managed)  // a2 expired contract only
	assert.Equal(t, 0, s.Inactive)
	assert.Equal(t, 1, s.ExpiringSoon)
	assert.Equal(t, 1, s.WithOpportunity)
}
