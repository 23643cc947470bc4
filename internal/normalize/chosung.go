package normalize

import "strings"

// The 19 leading consonants of modern Hangul, indexed by the initial-jamo
// component of a composed syllable.
var chosungTable = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var chosungSet = func() map[rune]bool {
	set := make(map[rune]bool, len(chosungTable))
	for _, r := range chosungTable {
		set[r] = true
	}
	return set
}()

const (
	hangulBase       = 0xAC00
	hangulEnd        = 0xD7A3
	syllablesPerJamo = 588 // 21 medials x 28 finals
)

// Chosung reduces a string to its leading-consonant skeleton: composed
// Hangul syllables become their initial consonant, everything else passes
// through unchanged. "삼거리" reduces to "ㅅㄱㄹ".
func Chosung(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= hangulBase && r <= hangulEnd {
			b.WriteRune(chosungTable[(r-hangulBase)/syllablesPerJamo])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsChosungQuery reports whether the term consists entirely of leading
// consonants (ignoring spaces), meaning the user is typing an
// initial-based search.
func IsChosungQuery(term string) bool {
	seen := false
	for _, r := range term {
		if r == ' ' {
			continue
		}
		if !chosungSet[r] {
			return false
		}
		seen = true
	}
	return seen
}

// MatchesChosung reports whether the candidate's chosung skeleton contains
// the given leading-consonant term. Spaces on either side are ignored so
// "ㅅㄱㄹ" finds "삼거리 상사".
func MatchesChosung(candidate, term string) bool {
	skeleton := strings.ReplaceAll(Chosung(candidate), " ", "")
	return strings.Contains(skeleton, strings.ReplaceAll(term, " ", ""))
}
