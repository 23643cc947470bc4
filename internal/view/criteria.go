// Package view derives ordered, filtered views over in-memory pipeline
// records. Every function here is pure: no I/O, deterministic output,
// stable order for equal keys.
package view

import (
	"strings"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/stage"
)

// Record is a pipeline row joined with its resolved company name, the
// unit the filter and sort engines operate on.
type Record struct {
	model.Deal
	Company string
}

// Criteria is one set of active filter selections. Dimensions combine
// with AND; values within a dimension combine with OR; an empty dimension
// matches everything.
type Criteria struct {
	Stages        []string
	Assignees     []string
	AmountBuckets []string
	NeedsTags     []string
	Companies     []string
	Search        string
}

// IsZero reports whether no filter is active.
func (c Criteria) IsZero() bool {
	return len(c.Stages) == 0 && len(c.Assignees) == 0 && len(c.AmountBuckets) == 0 &&
		len(c.NeedsTags) == 0 && len(c.Companies) == 0 && strings.TrimSpace(c.Search) == ""
}

// Filter returns the records matching the criteria, preserving input
// order. The result is a fresh slice; the input is never mutated.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, c Criteria) bool {
	if len(c.Stages) > 0 && !matchStage(r, c.Stages) {
		return false
	}
	if len(c.Assignees) > 0 && !matchAssignee(r, c.Assignees) {
		return false
	}
	if len(c.AmountBuckets) > 0 && !matchBucket(r, c.AmountBuckets) {
		return false
	}
	if len(c.NeedsTags) > 0 && !matchNeeds(r, c.NeedsTags) {
		return false
	}
	if len(c.Companies) > 0 && !matchCompany(r, c.Companies) {
		return false
	}
	if term := strings.TrimSpace(c.Search); term != "" && !matchSearch(r, term) {
		return false
	}
	return true
}

func matchStage(r Record, selected []string) bool {
	got := stage.Resolve(r.Stage)
	for _, s := range selected {
		want := stage.Resolve(s)
		if want.Code != "" && want.Code == got.Code {
			return true
		}
		// Unknown selections fall back to label equality.
		if want.Code == "" && want.Label == got.Label {
			return true
		}
	}
	return false
}

func matchAssignee(r Record, selected []string) bool {
	for _, a := range selected {
		if normalize.SameName(r.AssignedTo, a) {
			return true
		}
	}
	return false
}

// Bucket classifies a record's amount field into a canonical bucket
// label: labels pass through, free-typed numbers fall into their range,
// and everything else is 미정.
func Bucket(amountRange string) string {
	v := strings.TrimSpace(amountRange)
	if normalize.IsAmountBucket(v) {
		return v
	}
	n, ok := normalize.AmountValue(v)
	if !ok {
		return "미정"
	}
	switch {
	case n < 10_000_000:
		return "1천만원 미만"
	case n < 50_000_000:
		return "1천만원~5천만원"
	case n < 100_000_000:
		return "5천만원~1억원"
	default:
		return "1억원 이상"
	}
}

func matchBucket(r Record, selected []string) bool {
	got := Bucket(r.AmountRange)
	for _, b := range selected {
		if strings.TrimSpace(b) == got {
			return true
		}
	}
	return false
}

func matchNeeds(r Record, selected []string) bool {
	for _, tag := range selected {
		if r.HasNeedsTag(tag) {
			return true
		}
	}
	return false
}

func matchCompany(r Record, selected []string) bool {
	for _, co := range selected {
		if strings.TrimSpace(co) == r.Company {
			return true
		}
	}
	return false
}

func matchSearch(r Record, term string) bool {
	fields := []string{r.Name, r.Company, r.AssignedTo, stage.Label(r.Stage)}

	if normalize.IsChosungQuery(term) {
		for _, f := range fields {
			if normalize.MatchesChosung(f, term) {
				return true
			}
		}
		return false
	}

	lower := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lower) {
			return true
		}
	}
	return false
}
