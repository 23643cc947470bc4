package view

import (
	"testing"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, company, assignee, stg, amount, needs, next string) Record {
	return Record{
		Deal: model.Deal{
			Name:            name,
			Stage:           stg,
			AssignedTo:      assignee,
			AmountRange:     amount,
			NeedsSummary:    needs,
			NextContactDate: next,
		},
		Company: company,
	}
}

func sampleRecords() []Record {
	return []Record{
		rec("오일환 대표", "삼거리식품", "김수진 과장", "상담중", "30,000,000", "재고관리,바코드", "2025-09-10"),
		rec("박민호", "한빛유통", "김수진", "S1", "1천만원 미만", "발주자동화", "2025-09-01"),
		rec("이상철", "동성기계", "정다혜 팀장", "S6_complete", "", "", ""),
		rec("최연우", "삼거리식품", "정다혜", "견적 발송", "120,000,000", "재고관리", "2025-09-05"),
	}
}

func TestFilterEmptyCriteriaMatchesAll(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, Criteria{})
	assert.Equal(t, records, got)
}

func TestFilterByStageAliases(t *testing.T) {
	records := sampleRecords()

	// "상담 진행" and "상담중" are the same logical stage.
	got := Filter(records, Criteria{Stages: []string{"상담 진행"}})
	require.Len(t, got, 1)
	assert.Equal(t, "오일환 대표", got[0].Name)

	// Multiple selections OR together.
	got = Filter(records, Criteria{Stages: []string{"첫 컨택", "종료"}})
	assert.Len(t, got, 2)
}

func TestFilterByAssigneeNormalizesHonorifics(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, Criteria{Assignees: []string{"김수진"}})
	assert.Len(t, got, 2) // "김수진 과장" and "김수진" are one person
}

func TestFilterByAmountBucket(t *testing.T) {
	records := sampleRecords()

	got := Filter(records, Criteria{AmountBuckets: []string{"1천만원~5천만원"}})
	require.Len(t, got, 1)
	assert.Equal(t, "오일환 대표", got[0].Name) // 30M falls in the bucket

	got = Filter(records, Criteria{AmountBuckets: []string{"1억원 이상"}})
	require.Len(t, got, 1)
	assert.Equal(t, "최연우", got[0].Name)

	got = Filter(records, Criteria{AmountBuckets: []string{"미정"}})
	require.Len(t, got, 1)
	assert.Equal(t, "이상철", got[0].Name)
}

func TestFilterByNeedsTag(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, Criteria{NeedsTags: []string{"재고관리"}})
	assert.Len(t, got, 2)
}

func TestFilterConjunctionAcrossDimensions(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, Criteria{
		Companies: []string{"삼거리식품"},
		NeedsTags: []string{"바코드"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "오일환 대표", got[0].Name)
}

func TestFilterChosungSearch(t *testing.T) {
	records := sampleRecords()

	// "ㅅㄱ" is a chosung query; "삼거리식품" reduces to "ㅅㄱㄹㅅㅍ".
	got := Filter(records, Criteria{Search: "ㅅㄱ"})
	assert.Len(t, got, 2) // both 삼거리식품 records

	got = Filter(records, Criteria{Search: "한빛"})
	require.Len(t, got, 1)
	assert.Equal(t, "박민호", got[0].Name)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	records := []Record{rec("Acme Korea", "ACME", "김수진", "S1", "", "", "")}
	got := Filter(records, Criteria{Search: "acme"})
	assert.Len(t, got, 1)
}

func TestFilterIdempotent(t *testing.T) {
	records := sampleRecords()
	criteria := Criteria{
		Stages:    []string{"상담중", "S1"},
		Search:    "ㅅ",
		NeedsTags: []string{"재고관리", "발주자동화"},
	}
	once := Filter(records, criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, once, twice)
}

func TestDefaultSortClosedLastNullsLast(t *testing.T) {
	records := sampleRecords()
	got := DefaultSort(records, ByNextContact)

	require.Len(t, got, 4)
	assert.Equal(t, "박민호", got[0].Name)  // 09-01
	assert.Equal(t, "최연우", got[1].Name)  // 09-05
	assert.Equal(t, "오일환 대표", got[2].Name) // 09-10
	assert.Equal(t, "이상철", got[3].Name)  // done group sorts last
}

func TestDefaultSortFallsBackToFirstContact(t *testing.T) {
	noNext := rec("강혜림", "우주상사", "김수진", "S1", "", "", "")
	noNext.FirstContactDate = "2025-01-01"
	records := []Record{
		rec("박민호", "한빛유통", "김수진", "S1", "", "", "2025-06-01"),
		noNext,
	}

	got := DefaultSort(records, ByNextContact)
	require.Len(t, got, 2)
	// No next contact scheduled: the first contact date orders it, so it
	// lands ahead of the June follow-up instead of at the end.
	assert.Equal(t, "강혜림", got[0].Name)
	assert.Equal(t, "박민호", got[1].Name)
}

func TestSortByDateColumn(t *testing.T) {
	records := sampleRecords()

	asc := Sort(records, SortSpec{Column: ColNextContact, Direction: Asc})
	assert.Equal(t, "박민호", asc[0].Name)
	assert.Equal(t, "이상철", asc[3].Name) // null date last

	desc := Sort(records, SortSpec{Column: ColNextContact, Direction: Desc})
	assert.Equal(t, "오일환 대표", desc[0].Name)
	assert.Equal(t, "이상철", desc[3].Name) // null date still last
}

func TestSortByAmountColumn(t *testing.T) {
	records := sampleRecords()
	got := Sort(records, SortSpec{Column: ColAmount, Direction: Desc})

	assert.Equal(t, "최연우", got[0].Name) // 120M
	assert.Equal(t, "오일환 대표", got[1].Name)
	// Bucket label and empty amount have no numeric value: last.
	assert.Equal(t, "박민호", got[2].Name)
	assert.Equal(t, "이상철", got[3].Name)
}

func TestSortKoreanCollation(t *testing.T) {
	records := []Record{
		rec("하동일", "", "", "S0", "", "", ""),
		rec("가온누리", "", "", "S0", "", "", ""),
		rec("나래물산", "", "", "S0", "", "", ""),
	}
	got := Sort(records, SortSpec{Column: ColName, Direction: Asc})
	assert.Equal(t, []string{"가온누리", "나래물산", "하동일"},
		[]string{got[0].Name, got[1].Name, got[2].Name})
}

func TestSortStableForEqualKeys(t *testing.T) {
	records := []Record{
		rec("b", "", "동일", "S0", "", "", ""),
		rec("a", "", "동일", "S0", "", "", ""),
	}
	got := Sort(records, SortSpec{Column: ColAssignee, Direction: Asc})
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "a", got[1].Name)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	first := records[0].Name
	_ = Sort(records, SortSpec{Column: ColName, Direction: Desc})
	_ = DefaultSort(records, ByNextContact)
	assert.Equal(t, first, records[0].Name)
}

func TestToggle(t *testing.T) {
	s := Toggle(SortSpec{}, ColName)
	assert.Equal(t, SortSpec{Column: ColName, Direction: Asc}, s)

	s = Toggle(s, ColName)
	assert.Equal(t, SortSpec{Column: ColName, Direction: Desc}, s)

	// A different column restarts ascending.
	s = Toggle(s, ColAmount)
	assert.Equal(t, SortSpec{Column: ColAmount, Direction: Asc}, s)

	// Toggling a descending column restarts ascending too.
	s = Toggle(SortSpec{Column: ColAmount, Direction: Desc}, ColAmount)
	assert.Equal(t, SortSpec{Column: ColAmount, Direction: Asc}, s)
}

func TestBucket(t *testing.T) {
	assert.Equal(t, "1천만원 미만", Bucket("9,999,999"))
	assert.Equal(t, "1천만원~5천만원", Bucket("10000000"))
	assert.Equal(t, "5천만원~1억원", Bucket("99,000,000"))
	assert.Equal(t, "1억원 이상", Bucket("100000000"))
	assert.Equal(t, "1억원 이상", Bucket("1억원 이상"))
	assert.Equal(t, "미정", Bucket(""))
}
