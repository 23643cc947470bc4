package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("oauth credentials", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "token"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("service account", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/tmp/sa.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("no auth", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("both auth methods", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "token"
		cfg.ServiceAccountPath = "/tmp/sa.json"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad batch size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/tmp/sa.json"
		cfg.BatchSize = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults the spreadsheet name", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/tmp/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

		cfg := DefaultConfig()
		require.NoError(t, cfg.LoadFromEnv())
		assert.Equal(t, "영업 파이프라인 리포트", cfg.SpreadsheetName)
	})

	t.Run("missing auth", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFromEnv())
	})
}
