package view

import (
	"sort"

	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/stage"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a column sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// Sortable column names.
const (
	ColName         = "name"
	ColCompany      = "company"
	ColAssignee     = "assignee"
	ColStage        = "stage"
	ColAmount       = "amount"
	ColFirstContact = "firstContactDate"
	ColNextContact  = "nextContactDate"
	ColLastActivity = "lastActivityDate"
	ColPriority     = "priority"
	ColGrade        = "grade"
)

// SortSpec is the single active column sort, persisted across sessions.
// A zero Column means no explicit sort is active.
type SortSpec struct {
	Column    string
	Direction Direction
}

// Toggle advances the sort state for a clicked column: a fresh column
// starts ascending, clicking the active column flips it to descending.
func Toggle(current SortSpec, column string) SortSpec {
	if current.Column == column && current.Direction == Asc {
		return SortSpec{Column: column, Direction: Desc}
	}
	return SortSpec{Column: column, Direction: Asc}
}

// DateField selects which date orders the default view.
type DateField string

const (
	// ByNextContact orders by the next scheduled touch.
	ByNextContact DateField = "nextContactDate"
	// ByFirstContact orders by intake date.
	ByFirstContact DateField = "firstContactDate"
)

// DefaultSort orders records for the pipeline table when no column sort
// is active: terminal-group records after all others, then ascending by
// the chosen date field, falling back to the first contact date when a
// next contact is not scheduled, with missing dates last. The sort is
// stable and returns a fresh slice.
func DefaultSort(records []Record, field DateField) []Record {
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i], out[j]
		gi := stage.Resolve(di.Stage).Group == stage.GroupDone
		gj := stage.Resolve(dj.Stage).Group == stage.GroupDone
		if gi != gj {
			return !gi
		}
		return dateLess(dateValue(di, field), dateValue(dj, field))
	})
	return out
}

// Sort orders records by an explicit column sort. Null or placeholder
// values sort to the end regardless of direction; string columns compare
// with Korean collation, date and numeric columns by value. Stable, and
// returns a fresh slice.
func Sort(records []Record, spec SortSpec) []Record {
	out := append([]Record(nil), records...)
	if spec.Column == "" {
		return out
	}

	col := collate.New(language.Korean)
	desc := spec.Direction == Desc

	sort.SliceStable(out, func(i, j int) bool {
		less, iNull, jNull := compare(col, out[i], out[j], spec.Column)
		// Nulls stay last in both directions.
		if iNull != jNull {
			return !iNull
		}
		if iNull {
			return false
		}
		if desc {
			return !less && !equalKey(col, out[i], out[j], spec.Column)
		}
		return less
	})
	return out
}

func compare(col *collate.Collator, a, b Record, column string) (less, aNull, bNull bool) {
	switch column {
	case ColAmount:
		av, aok := normalize.AmountValue(a.AmountRange)
		bv, bok := normalize.AmountValue(b.AmountRange)
		return av < bv, !aok, !bok
	case ColFirstContact, ColNextContact, ColLastActivity:
		av, aok := normalize.Date(dateColumn(a, column))
		bv, bok := normalize.Date(dateColumn(b, column))
		return av.Before(bv), !aok, !bok
	default:
		av, bv := stringColumn(a, column), stringColumn(b, column)
		return col.CompareString(av, bv) < 0, av == "", bv == ""
	}
}

func equalKey(col *collate.Collator, a, b Record, column string) bool {
	switch column {
	case ColAmount:
		av, _ := normalize.AmountValue(a.AmountRange)
		bv, _ := normalize.AmountValue(b.AmountRange)
		return av == bv
	case ColFirstContact, ColNextContact, ColLastActivity:
		av, _ := normalize.Date(dateColumn(a, column))
		bv, _ := normalize.Date(dateColumn(b, column))
		return av.Equal(bv)
	default:
		return col.CompareString(stringColumn(a, column), stringColumn(b, column)) == 0
	}
}

func stringColumn(r Record, column string) string {
	switch column {
	case ColName:
		return r.Name
	case ColCompany:
		return r.Company
	case ColAssignee:
		return normalize.Name(r.AssignedTo)
	case ColStage:
		return stage.Label(r.Stage)
	case ColPriority:
		return r.Priority
	case ColGrade:
		return r.Grade
	default:
		return ""
	}
}

func dateColumn(r Record, column string) string {
	switch column {
	case ColFirstContact:
		return r.FirstContactDate
	case ColNextContact:
		return r.NextContactDate
	case ColLastActivity:
		return r.LastActivityDate
	default:
		return ""
	}
}

// dateValue picks the ordering date. A record with no next contact
// scheduled still orders by its first contact date rather than dropping
// to the end.
func dateValue(r Record, field DateField) string {
	if field == ByFirstContact {
		return r.FirstContactDate
	}
	if r.NextContactDate != "" {
		return r.NextContactDate
	}
	return r.FirstContactDate
}

// dateLess treats unparseable dates as greater than any real date so they
// land at the end of an ascending default sort.
func dateLess(a, b string) bool {
	da, aok := normalize.Date(a)
	db, bok := normalize.Date(b)
	if aok != bok {
		return aok
	}
	if !aok {
		return false
	}
	return da.Before(db)
}
