package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/common"
	"github.com/karyhub/dealflow/internal/model"
)

func TestCreateQuotationComputesTotals(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	quotation := &model.Quotation{
		Title: "보안관제 연간 계약",
		Items: []model.LineItem{
			{Name: "관제 서비스", Quantity: 12, UnitPrice: 1_500_000},
			{Name: "초기 구축비", Quantity: 1, UnitPrice: 3_000_005},
		},
	}
	require.NoError(t, store.CreateQuotation(ctx, quotation))

	retrieved, err := store.GetQuotation(ctx, quotation.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(21_000_005), retrieved.Supply)
	assert.Equal(t, int64(2_100_000), retrieved.Tax) // 10% VAT, truncated
	assert.Equal(t, int64(23_100_005), retrieved.Total)
	assert.Equal(t, model.QuotationDraft, retrieved.Status)

	require.Len(t, retrieved.Items, 2)
	assert.Equal(t, "관제 서비스", retrieved.Items[0].Name)
	assert.Equal(t, int64(18_000_000), retrieved.Items[0].Amount())
}

func TestGetQuotations(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, title := range []string{"견적 A", "견적 B"} {
		require.NoError(t, store.CreateQuotation(ctx, &model.Quotation{Title: title}))
	}

	quotations, err := store.GetQuotations(ctx)
	require.NoError(t, err)
	assert.Len(t, quotations, 2)

	_, err = store.GetQuotation(ctx, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
