package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/common"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/service"
)

func strPtr(s string) *string { return &s }

func createTestDeal(t *testing.T, store *SQLiteStorage, accountID string) *model.Deal {
	t.Helper()
	deal := &model.Deal{
		Name:            "삼거리 상사 보안 구축",
		AccountID:       accountID,
		Stage:           "S2",
		AssignedTo:      "오일환",
		NextContactDate: "2026-09-15",
		AmountRange:     "1천만원~5천만원",
	}
	require.NoError(t, store.CreateDeal(context.Background(), deal))
	return deal
}

func TestCreateAndGetDeal(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	deal := createTestDeal(t, store, "")
	assert.NotEmpty(t, deal.ID)

	retrieved, err := store.GetDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.Name, retrieved.Name)
	assert.Equal(t, "S2", retrieved.Stage)
	assert.Equal(t, "2026-09-15", retrieved.NextContactDate)

	_, err = store.GetDeal(ctx, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetDealsByAccount(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	account := &model.Account{Name: "삼거리 상사"}
	require.NoError(t, store.CreateAccount(ctx, account))
	other := &model.Account{Name: "한빛유통"}
	require.NoError(t, store.CreateAccount(ctx, other))

	mine := createTestDeal(t, store, account.ID)
	createTestDeal(t, store, other.ID)

	deals, err := store.GetDealsByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, mine.ID, deals[0].ID)

	deals, err = store.GetDealsByAccount(ctx, "no-such-account")
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestPatchDeal(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	deal := createTestDeal(t, store, "")

	t.Run("updates only the given fields", func(t *testing.T) {
		err := store.PatchDeal(ctx, deal.ID, service.DealPatch{
			AssignedTo: strPtr("김서연"),
			Priority:   strPtr("high"),
		})
		require.NoError(t, err)

		retrieved, err := store.GetDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, "김서연", retrieved.AssignedTo)
		assert.Equal(t, "high", retrieved.Priority)
		assert.Equal(t, deal.Name, retrieved.Name) // untouched
	})

	t.Run("rejects stage updates", func(t *testing.T) {
		err := store.PatchDeal(ctx, deal.ID, service.DealPatch{Stage: strPtr("S3")})
		assert.ErrorIs(t, err, common.ErrInvalidStage)
	})

	t.Run("unknown deal", func(t *testing.T) {
		err := store.PatchDeal(ctx, "no-such-id", service.DealPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestChangeStage(t *testing.T) {
	ctx := context.Background()

	t.Run("closing requires a reason", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		deal := createTestDeal(t, store, "")

		err := store.ChangeStage(ctx, deal.ID, "S6_complete", "")
		assert.ErrorIs(t, err, common.ErrReasonRequired)

		// The failed transition must not have written anything.
		retrieved, err := store.GetDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, "S2", retrieved.Stage)
		assert.Equal(t, "2026-09-15", retrieved.NextContactDate)
	})

	t.Run("closing with a reason clears next contact", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		deal := createTestDeal(t, store, "")

		err := store.ChangeStage(ctx, deal.ID, "S6_complete", "가격 경쟁력 부족")
		require.NoError(t, err)

		retrieved, err := store.GetDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, "S6_complete", retrieved.Stage)
		assert.Equal(t, "가격 경쟁력 부족", retrieved.CloseReason)
		assert.Empty(t, retrieved.NextContactDate)
	})

	t.Run("winning clears next contact without a reason", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		deal := createTestDeal(t, store, "")

		require.NoError(t, store.ChangeStage(ctx, deal.ID, "S5_complete", ""))

		retrieved, err := store.GetDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, "S5_complete", retrieved.Stage)
		assert.Empty(t, retrieved.NextContactDate)
	})

	t.Run("recontact requires a reason but keeps next contact", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		deal := createTestDeal(t, store, "")

		err := store.ChangeStage(ctx, deal.ID, "재컨택", "")
		assert.ErrorIs(t, err, common.ErrReasonRequired)

		require.NoError(t, store.ChangeStage(ctx, deal.ID, "재컨택", "내년 예산 재검토"))
		retrieved, err := store.GetDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-09-15", retrieved.NextContactDate)
	})
}

func TestDeleteDealCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("removes activities with the deal", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		deal := createTestDeal(t, store, "")

		for _, date := range []string{"2026-08-01", "2026-08-10"} {
			require.NoError(t, store.CreateActivity(ctx, &model.Activity{
				DealID: deal.ID,
				Type:   model.ActivityCall,
				Date:   date,
			}))
		}

		require.NoError(t, store.DeleteDeal(ctx, deal.ID, service.DeleteDealOptions{}))

		_, err := store.GetDeal(ctx, deal.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)

		activities, err := store.GetActivitiesByDeal(ctx, deal.ID)
		require.NoError(t, err)
		assert.Empty(t, activities)
	})

	t.Run("deletes the account when it was the last deal", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		account := &model.Account{Name: "삼거리 상사"}
		require.NoError(t, store.CreateAccount(ctx, account))
		deal := createTestDeal(t, store, account.ID)

		err := store.DeleteDeal(ctx, deal.ID, service.DeleteDealOptions{DeleteAccount: true})
		require.NoError(t, err)

		_, err = store.GetAccount(ctx, account.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("keeps the account while other deals reference it", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		account := &model.Account{Name: "삼거리 상사"}
		require.NoError(t, store.CreateAccount(ctx, account))
		first := createTestDeal(t, store, account.ID)
		createTestDeal(t, store, account.ID)

		err := store.DeleteDeal(ctx, first.ID, service.DeleteDealOptions{DeleteAccount: true})
		require.NoError(t, err)

		retrieved, err := store.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "삼거리 상사", retrieved.Name)
	})
}
