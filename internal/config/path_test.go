package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("SOME_DIR", "/opt/data")

	assert.Equal(t, "/opt/data/db", ExpandPath("$SOME_DIR/db"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv("DEALFLOW_DATA_DIR", "/tmp/dealflow-test")

	assert.Equal(t, "/tmp/dealflow-test", DataDir())
	assert.Equal(t, filepath.Join("/tmp/dealflow-test", "dealflow.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/tmp/dealflow-test", "prefs.json"), PrefsPath())
	assert.Equal(t, filepath.Join("/tmp/dealflow-test", "blobs"), BlobDir())
}
