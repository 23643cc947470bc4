package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"오일환 대표", "오일환"},
		{"오일환", "오일환"},
		{"김수진 과장", "김수진"},
		{"박민호본부장", "박민호"},
		{"이상철 매니저", "이상철"},
		{"  정다혜 팀장  ", "정다혜"},
		{"대표", "대표"}, // bare honorific stays
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.raw))
		})
	}
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("오일환 대표", "오일환"))
	assert.True(t, SameName("김수진 과장", "김수진 팀장"))
	assert.False(t, SameName("오일환", "김수진"))
}

func TestDateRoundTrip(t *testing.T) {
	tests := []string{
		"2025-03-01",
		"2025-12-31",
		"2024-02-29",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			d, ok := Date(raw)
			assert.True(t, ok)
			assert.Equal(t, raw, FormatDate(d))
		})
	}
}

func TestDateIgnoresTimePart(t *testing.T) {
	d, ok := Date("2025-03-01 23:30")
	assert.True(t, ok)
	assert.Equal(t, "2025-03-01", FormatDate(d))

	// The calendar day must hold in KST even for late-evening timestamps.
	assert.Equal(t, 1, d.Day())
	_, offset := d.Zone()
	assert.Equal(t, 9*60*60, offset)
}

func TestDateMalformed(t *testing.T) {
	for _, raw := range []string{"", "내일", "2025-13-01", "03/01/2025"} {
		_, ok := Date(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}

func TestDaysUntil(t *testing.T) {
	today := Today()
	in7 := FormatDate(today.AddDate(0, 0, 7))
	past := FormatDate(today.AddDate(0, 0, -3))

	days, ok := DaysUntil(in7)
	assert.True(t, ok)
	assert.Equal(t, 7, days)

	days, ok = DaysUntil(past)
	assert.True(t, ok)
	assert.Equal(t, -3, days)

	assert.True(t, Overdue(past))
	assert.False(t, Overdue(in7))
	assert.False(t, Overdue(FormatDate(today)))
	assert.False(t, Overdue("날짜없음"))
}

func TestTodayIsMidnightKST(t *testing.T) {
	today := Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	_, offset := today.Zone()
	assert.Equal(t, 9*60*60, offset)
}

func TestAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1천만원 미만", "1천만원 미만"}, // bucket passes through
		{"30000000", "30,000,000"},
		{"3,000만원", "3,000"}, // digits only
		{"30,000,000원", "30,000,000"},
		{"금액 미정", "금액 미정"}, // no digits, returned as typed
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.raw))
		})
	}
}

func TestAmountValue(t *testing.T) {
	n, ok := AmountValue("30,000,000원")
	assert.True(t, ok)
	assert.Equal(t, int64(30_000_000), n)

	_, ok = AmountValue("1억원 이상")
	assert.False(t, ok) // bucket label, not a number

	_, ok = AmountValue("미확인")
	assert.False(t, ok)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "999", FormatAmount(999))
	assert.Equal(t, "1,000", FormatAmount(1000))
	assert.Equal(t, "12,345,678", FormatAmount(12345678))
	assert.Equal(t, "-1,234", FormatAmount(-1234))
}

func TestChosung(t *testing.T) {
	assert.Equal(t, "ㅅㄱㄹ", Chosung("삼거리"))
	assert.Equal(t, "ㅇㅇㅎ", Chosung("오일환"))
	assert.Equal(t, "ABC", Chosung("ABC"))
	assert.Equal(t, "ㅎㄱ mart", Chosung("한국 mart"))
}

func TestIsChosungQuery(t *testing.T) {
	assert.True(t, IsChosungQuery("ㅅㄱ"))
	assert.True(t, IsChosungQuery("ㅅㄱ ㄹ"))
	assert.False(t, IsChosungQuery("삼거리"))
	assert.False(t, IsChosungQuery("ㅅ가"))
	assert.False(t, IsChosungQuery(""))
	assert.False(t, IsChosungQuery("   "))
}

func TestMatchesChosung(t *testing.T) {
	assert.True(t, MatchesChosung("삼거리", "ㅅㄱ"))
	assert.True(t, MatchesChosung("삼거리 상사", "ㅅㄱㄹㅅㅅ"))
	assert.False(t, MatchesChosung("오일환", "ㅅㄱ"))
}
