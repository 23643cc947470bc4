package normalize

import (
	"strconv"
	"strings"
)

// AmountBuckets are the canonical range labels offered by the intake form.
// Free-typed values that match one exactly stay as the bucket label;
// anything else is treated as a formatted number.
var AmountBuckets = []string{
	"1천만원 미만",
	"1천만원~5천만원",
	"5천만원~1억원",
	"1억원 이상",
	"미정",
}

// IsAmountBucket reports whether the value is one of the canonical
// bucket labels.
func IsAmountBucket(v string) bool {
	v = strings.TrimSpace(v)
	for _, b := range AmountBuckets {
		if v == b {
			return true
		}
	}
	return false
}

// AmountValue strips every non-digit character from a free-typed amount
// and returns the numeric value. Bucket labels and values without digits
// return ok=false.
func AmountValue(raw string) (value int64, ok bool) {
	if IsAmountBucket(raw) {
		return 0, false
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatAmount renders a numeric amount with thousands separators.
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Amount canonicalizes an amount field for display: bucket labels pass
// through, numeric text is reformatted with separators, and anything
// without digits is returned as typed.
func Amount(raw string) string {
	raw = strings.TrimSpace(raw)
	if IsAmountBucket(raw) {
		return raw
	}
	if n, ok := AmountValue(raw); ok {
		return FormatAmount(n)
	}
	return raw
}
