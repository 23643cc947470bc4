// Package stage defines the pipeline stage taxonomy: canonical codes,
// the alias equivalence classes accumulated over renames, display labels,
// and coarse grouping.
package stage

import "strings"

// Code is a canonical stage identifier.
type Code string

// Canonical stage codes, in pipeline order.
const (
	S0 Code = "S0" // 신규 리드
	S1 Code = "S1" // 컨택 시도
	S2 Code = "S2" // 상담 진행
	S3 Code = "S3" // 견적 발송
	S4 Code = "S4" // 계약 진행
	S5 Code = "S5" // 계약 완료
	S6 Code = "S6" // 종료
	S7 Code = "S7" // 재컨택
)

// Group is the coarse bucket a stage falls into.
type Group string

const (
	// GroupTodo covers stages waiting on a first or next touch.
	GroupTodo Group = "todo"
	// GroupInProgress covers actively worked stages.
	GroupInProgress Group = "inProgress"
	// GroupDone covers terminal stages.
	GroupDone Group = "done"
)

// Info is the resolved view of a raw stage value.
type Info struct {
	Code  Code
	Label string
	Group Group
}

// Codes lists the canonical stage codes in pipeline order.
func Codes() []Code {
	return []Code{S0, S1, S2, S3, S4, S5, S6, S7}
}

type stageDef struct {
	code    Code
	label   string
	group   Group
	aliases []string
}

// The alias sets accumulated through renames. Stage names were changed in
// the UI several times without backfilling stored rows, so every historical
// spelling must resolve to the same canonical code.
var defs = []stageDef{
	{S0, "신규 리드", GroupTodo, []string{"S0", "S0_lead", "신규 리드", "신규", "리드", "잠재고객"}},
	{S1, "컨택 시도", GroupTodo, []string{"S1", "S1_contact", "컨택 시도", "첫 컨택", "컨택중", "컨택 예정"}},
	{S2, "상담 진행", GroupInProgress, []string{"S2", "S2_consult", "상담 진행", "상담", "상담중", "미팅 진행"}},
	{S3, "견적 발송", GroupInProgress, []string{"S3", "S3_quote", "견적 발송", "견적", "견적 요청", "제안"}},
	{S4, "계약 진행", GroupInProgress, []string{"S4", "S4_contract", "계약 진행", "협상", "네고", "계약 검토"}},
	{S5, "계약 완료", GroupDone, []string{"S5", "S5_complete", "계약 완료", "수주 완료", "완료"}},
	{S6, "종료", GroupDone, []string{"S6", "S6_complete", "S6_closed", "종료", "실주", "드랍"}},
	{S7, "재컨택", GroupTodo, []string{"S7", "S7_recontact", "재컨택", "재컨택 대상", "장기 팔로업"}},
}

var (
	byAlias = make(map[string]Info)
	byCode  = make(map[Code]Info)
)

func init() {
	for _, d := range defs {
		info := Info{Code: d.code, Label: d.label, Group: d.group}
		byCode[d.code] = info
		for _, a := range d.aliases {
			byAlias[normalizeAlias(a)] = info
		}
	}
}

func normalizeAlias(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Resolve maps a raw stage value to its canonical info. Unknown values
// resolve softly: the raw value becomes its own label, the group defaults
// to todo, and the code is empty.
func Resolve(raw string) Info {
	if info, ok := byAlias[normalizeAlias(raw)]; ok {
		return info
	}
	return Info{Code: "", Label: raw, Group: GroupTodo}
}

// Canonical returns the canonical code for a raw stage value, reporting
// whether the value was recognized.
func Canonical(raw string) (Code, bool) {
	info, ok := byAlias[normalizeAlias(raw)]
	return info.Code, ok
}

// Lookup returns the info for a canonical code.
func Lookup(code Code) (Info, bool) {
	info, ok := byCode[code]
	return info, ok
}

// Label returns the display label for a raw stage value.
func Label(raw string) string {
	return Resolve(raw).Label
}
