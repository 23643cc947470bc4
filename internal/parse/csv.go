package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/karyhub/dealflow/internal/normalize"
)

// CSVRow is one imported pipeline record plus the company name it
// references.
type CSVRow struct {
	Company          string
	Name             string
	Stage            string
	AssignedTo       string
	FirstContactDate string
	NextContactDate  string
	AmountRange      string
	NeedsSummary     string
}

// Key is the duplicate-detection key: record name plus company, with
// honorifics and surrounding space normalized away.
func (r CSVRow) Key() string {
	return normalize.Name(r.Name) + "\x00" + strings.TrimSpace(r.Company)
}

// Header names accepted for each column, English and Korean.
var csvColumns = map[string]string{
	"name": "name", "이름": "name", "딜명": "name", "건명": "name",
	"company": "company", "회사": "company", "회사명": "company", "업체명": "company",
	"stage": "stage", "단계": "stage",
	"assigned_to": "assigned_to", "담당자": "assigned_to",
	"first_contact_date": "first_contact_date", "최초컨택일": "first_contact_date",
	"next_contact_date": "next_contact_date", "다음컨택일": "next_contact_date",
	"amount_range": "amount_range", "금액": "amount_range", "예상금액": "amount_range",
	"needs_summary": "needs_summary", "니즈": "needs_summary",
}

// CSV reads an import file: a header row naming the columns (English or
// Korean), then one record per row. Rows without a name are skipped; an
// unrecognized header column is an error so typos surface immediately.
func CSV(r io.Reader) ([]CSVRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("import file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := make([]string, len(header))
	hasName := false
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		canonical, ok := csvColumns[strings.ToLower(h)]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", h)
		}
		fields[i] = canonical
		if canonical == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("import file has no name column")
	}

	var rows []CSVRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var row CSVRow
		for i, value := range record {
			if i >= len(fields) {
				break
			}
			value = strings.TrimSpace(value)
			switch fields[i] {
			case "name":
				row.Name = value
			case "company":
				row.Company = value
			case "stage":
				row.Stage = value
			case "assigned_to":
				row.AssignedTo = value
			case "first_contact_date":
				row.FirstContactDate = value
			case "next_contact_date":
				row.NextContactDate = value
			case "amount_range":
				row.AmountRange = value
			case "needs_summary":
				row.NeedsSummary = value
			}
		}
		if row.Name == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
