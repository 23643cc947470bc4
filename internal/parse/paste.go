// Package parse extracts intake-form fields from pasted consultation
// chat text. Everything here is heuristic: labeled lines are taken
// verbatim, and the company is matched against known accounts in a
// series of increasingly loose passes.
package parse

import (
	"regexp"
	"strings"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
)

// Intake is the pre-filled form a paste parses into. Empty fields were
// not found in the text.
type Intake struct {
	Company     string
	ContactName string
	Phone       string
	Email       string
	Date        string // "YYYY-MM-DD"
	AmountRange string
	Memo        string
}

// Labels recognized at the start of a line, before ':' or '：'.
var fieldLabels = map[string]func(*Intake, string){
	"회사":   func(in *Intake, v string) { in.Company = v },
	"회사명":  func(in *Intake, v string) { in.Company = v },
	"업체":   func(in *Intake, v string) { in.Company = v },
	"업체명":  func(in *Intake, v string) { in.Company = v },
	"이름":   func(in *Intake, v string) { in.ContactName = normalize.Name(v) },
	"성함":   func(in *Intake, v string) { in.ContactName = normalize.Name(v) },
	"담당자":  func(in *Intake, v string) { in.ContactName = normalize.Name(v) },
	"연락처":  func(in *Intake, v string) { in.Phone = v },
	"전화":   func(in *Intake, v string) { in.Phone = v },
	"전화번호": func(in *Intake, v string) { in.Phone = v },
	"이메일":  func(in *Intake, v string) { in.Email = v },
	"메일":   func(in *Intake, v string) { in.Email = v },
}

var (
	phonePattern = regexp.MustCompile(`0\d{1,2}[-.\s]?\d{3,4}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	datePattern  = regexp.MustCompile(`(\d{4})[-./년\s]+(\d{1,2})[-./월\s]+(\d{1,2})`)
)

// Paste parses free-form chat text into an intake form. Labeled lines
// win over pattern scans; the first match of each kind sticks.
func Paste(text string) Intake {
	var in Intake

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if label, value, ok := splitLabel(line); ok {
			if set, known := fieldLabels[label]; known && value != "" {
				set(&in, value)
				continue
			}
		}

		if in.Phone == "" {
			in.Phone = phonePattern.FindString(line)
		}
		if in.Email == "" {
			in.Email = emailPattern.FindString(line)
		}
		if in.Date == "" {
			if m := datePattern.FindStringSubmatch(line); m != nil {
				in.Date = normalize.FormatDateParts(m[1], m[2], m[3])
			}
		}
		if in.AmountRange == "" {
			for _, bucket := range normalize.AmountBuckets {
				if bucket != "미정" && strings.Contains(line, bucket) {
					in.AmountRange = bucket
					break
				}
			}
		}
	}

	in.Memo = strings.TrimSpace(text)
	return in
}

func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.IndexAny(line, ":：")
	if idx <= 0 {
		return "", "", false
	}
	sep := ":"
	if strings.HasPrefix(line[idx:], "：") {
		sep = "："
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):]), true
}

// MatchAccount finds the best existing account for a parsed company
// string. Passes run in order and the first hit wins: exact name,
// substring either way, normalized substring, then keyword overlap
// scoring. Returns nil when nothing plausibly matches.
func MatchAccount(company string, accounts []model.Account) *model.Account {
	company = strings.TrimSpace(company)
	if company == "" || len(accounts) == 0 {
		return nil
	}

	for i := range accounts {
		if accounts[i].Name == company {
			return &accounts[i]
		}
	}

	for i := range accounts {
		if strings.Contains(accounts[i].Name, company) || strings.Contains(company, accounts[i].Name) {
			return &accounts[i]
		}
	}

	norm := normalizeCompany(company)
	if norm != "" {
		for i := range accounts {
			candidate := normalizeCompany(accounts[i].Name)
			if candidate == "" {
				continue
			}
			if strings.Contains(candidate, norm) || strings.Contains(norm, candidate) {
				return &accounts[i]
			}
		}
	}

	return keywordMatch(company, accounts)
}

// Corporate decorations stripped before the normalized pass.
var companyNoise = []string{"(주)", "（주）", "주식회사", "㈜", "(유)", "유한회사"}

func normalizeCompany(name string) string {
	for _, noise := range companyNoise {
		name = strings.ReplaceAll(name, noise, "")
	}
	return strings.Join(strings.Fields(name), "")
}

func keywordMatch(company string, accounts []model.Account) *model.Account {
	words := strings.Fields(normalizeSpaces(company))
	if len(words) == 0 {
		return nil
	}

	best := -1
	bestScore := 0
	for i := range accounts {
		score := 0
		for _, w := range words {
			if len([]rune(w)) >= 2 && strings.Contains(accounts[i].Name, w) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &accounts[best]
}

func normalizeSpaces(s string) string {
	for _, noise := range companyNoise {
		s = strings.ReplaceAll(s, noise, " ")
	}
	return s
}
