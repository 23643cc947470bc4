// Package normalize canonicalizes the free-text fields that pipeline rows
// accumulated over time: assignee names with honorifics, mixed date
// formats, and formatted amount strings.
package normalize

import "strings"

// Honorific suffixes stripped from assignee names, longest first so that
// compound titles match before their shorter tails.
var honorifics = []string{
	"본부장",
	"매니저",
	"대표",
	"과장",
	"사원",
	"팀장",
	"부장",
	"차장",
	"이사",
	"사장",
	"실장",
}

// Name strips a trailing honorific from an assignee name to produce its
// canonical identity. "오일환 대표" and "오일환" normalize to the same key.
func Name(raw string) string {
	name := strings.TrimSpace(raw)
	for _, h := range honorifics {
		if strings.HasSuffix(name, h) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(name, h))
			// A bare honorific is somebody's whole entry; leave it alone.
			if trimmed != "" {
				return trimmed
			}
			return name
		}
	}
	return name
}

// SameName reports whether two raw assignee values refer to the same
// person after honorific stripping.
func SameName(a, b string) bool {
	return Name(a) == Name(b)
}
