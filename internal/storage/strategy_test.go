package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/model"
)

func createTestStrategyItem(t *testing.T, store *SQLiteStorage) *model.StrategyItem {
	t.Helper()
	ctx := context.Background()

	category := &model.StrategyCategory{Name: "신규 시장"}
	require.NoError(t, store.CreateStrategyCategory(ctx, category))

	item := &model.StrategyItem{CategoryID: category.ID, Title: "제조업 공략"}
	item.Cells[0] = model.StrategyCell{Text: "타깃 리스트 작성", Color: "yellow"}
	require.NoError(t, store.CreateStrategyItem(ctx, item))
	return item
}

func TestStrategyMatrixRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	item := createTestStrategyItem(t, store)

	categories, err := store.GetStrategyCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Items, 1)

	got := categories[0].Items[0]
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, "타깃 리스트 작성", got.Cells[0].Text)
	assert.Equal(t, "yellow", got.Cells[0].Color)
	assert.Empty(t, got.Cells[3].Text)
}

func TestUpdateStrategyCellRecordsHistory(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	item := createTestStrategyItem(t, store)

	require.NoError(t, store.UpdateStrategyCell(ctx, item.ID, 0, "리스트 검증 완료", "green"))
	require.NoError(t, store.UpdateStrategyCell(ctx, item.ID, 0, "영업 착수", "blue"))

	history, err := store.GetStrategyHistory(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first; each entry carries the value it replaced.
	assert.Equal(t, "리스트 검증 완료", history[0].OldValue)
	assert.Equal(t, "영업 착수", history[0].NewValue)
	assert.Equal(t, "타깃 리스트 작성", history[1].OldValue)

	categories, err := store.GetStrategyCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "영업 착수", categories[0].Items[0].Cells[0].Text)
	assert.Equal(t, "blue", categories[0].Items[0].Cells[0].Color)
}

func TestUpdateStrategyCellValidation(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	item := createTestStrategyItem(t, store)

	assert.ErrorIs(t, store.UpdateStrategyCell(ctx, item.ID, -1, "x", ""), ErrInvalidCell)
	assert.ErrorIs(t, store.UpdateStrategyCell(ctx, item.ID, model.StrategyCellCount, "x", ""), ErrInvalidCell)
}
