package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

func TestStageBands(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		bands, err := store.GetStageBands(ctx)
		require.NoError(t, err)
		assert.Equal(t, report.DefaultBands(), bands)
	})

	t.Run("override merges over defaults", func(t *testing.T) {
		custom := report.Band{Min: 5, Max: 20}
		require.NoError(t, store.SetStageBand(ctx, stage.S0, custom))

		bands, err := store.GetStageBands(ctx)
		require.NoError(t, err)
		assert.Equal(t, custom, bands[stage.S0])
		assert.Equal(t, report.DefaultBands()[stage.S3], bands[stage.S3])
	})

	t.Run("setting again replaces the override", func(t *testing.T) {
		require.NoError(t, store.SetStageBand(ctx, stage.S0, report.Band{Min: 1, Max: 2}))

		bands, err := store.GetStageBands(ctx)
		require.NoError(t, err)
		assert.Equal(t, report.Band{Min: 1, Max: 2}, bands[stage.S0])
	})

	t.Run("ignores look-alike keys", func(t *testing.T) {
		// "stageXband:S1" matches the LIKE pattern because '_' is a
		// wildcard, but it is not a band override.
		_, err := store.db.ExecContext(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
			"stageXband:S1", `{"Min":1,"Max":2}`)
		require.NoError(t, err)

		bands, err := store.GetStageBands(ctx)
		require.NoError(t, err)
		assert.Equal(t, report.DefaultBands()[stage.S1], bands[stage.S1])
	})

	t.Run("rejects bad input", func(t *testing.T) {
		assert.Error(t, store.SetStageBand(ctx, "S99", report.Band{Min: 1, Max: 2}))
		assert.Error(t, store.SetStageBand(ctx, stage.S1, report.Band{Min: 9, Max: 3}))
	})
}
