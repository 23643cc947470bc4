package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/model"
)

func TestPasteLabeledLines(t *testing.T) {
	text := `회사명: 삼거리 상사
담당자: 오일환 대표
연락처: 010-1234-5678
이메일: oh@samgeori.co.kr`

	in := Paste(text)
	assert.Equal(t, "삼거리 상사", in.Company)
	assert.Equal(t, "오일환", in.ContactName) // honorific stripped
	assert.Equal(t, "010-1234-5678", in.Phone)
	assert.Equal(t, "oh@samgeori.co.kr", in.Email)
	assert.Equal(t, text, in.Memo)
}

func TestPastePatternScan(t *testing.T) {
	text := `안녕하세요, 견적 문의드립니다.
다음 미팅은 2026년 9월 3일 괜찮으시고요
제 번호는 010 9876 5432 입니다
예산은 1천만원~5천만원 정도 생각하고 있어요
mail은 kim@example.com 으로 주세요`

	in := Paste(text)
	assert.Equal(t, "2026-09-03", in.Date)
	assert.Equal(t, "010 9876 5432", in.Phone)
	assert.Equal(t, "kim@example.com", in.Email)
	assert.Equal(t, "1천만원~5천만원", in.AmountRange)
	assert.Empty(t, in.Company)
}

func TestPasteFullWidthColon(t *testing.T) {
	in := Paste("업체：한빛 시스템")
	assert.Equal(t, "한빛 시스템", in.Company)
}

func TestPasteFirstMatchSticks(t *testing.T) {
	in := Paste("전화: 02-555-1234\n다른 번호 010-1111-2222")
	assert.Equal(t, "02-555-1234", in.Phone)
}

func TestMatchAccount(t *testing.T) {
	accounts := []model.Account{
		{ID: "1", Name: "삼거리 상사"},
		{ID: "2", Name: "(주)한빛 시스템"},
		{ID: "3", Name: "동해 물산"},
	}

	t.Run("exact", func(t *testing.T) {
		got := MatchAccount("삼거리 상사", accounts)
		require.NotNil(t, got)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("substring", func(t *testing.T) {
		got := MatchAccount("삼거리", accounts)
		require.NotNil(t, got)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("normalized corporate prefix", func(t *testing.T) {
		got := MatchAccount("주식회사 한빛시스템", accounts)
		require.NotNil(t, got)
		assert.Equal(t, "2", got.ID)
	})

	t.Run("keyword overlap", func(t *testing.T) {
		got := MatchAccount("물산 동해", accounts)
		require.NotNil(t, got)
		assert.Equal(t, "3", got.ID)
	})

	t.Run("no plausible match", func(t *testing.T) {
		assert.Nil(t, MatchAccount("전혀다른회사", accounts))
		assert.Nil(t, MatchAccount("", accounts))
		assert.Nil(t, MatchAccount("삼거리", nil))
	})
}
