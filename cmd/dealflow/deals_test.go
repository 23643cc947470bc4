package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyhub/dealflow/internal/prefs"
	"github.com/karyhub/dealflow/internal/view"
)

func TestListOptionsPersistsAllDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store, err := prefs.Open(path)
	require.NoError(t, err)

	cmd := dealsListCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--stage", "S1",
		"--needs", "재고관리",
		"--company", "삼거리식품",
		"--search", "ㅅㄱ",
		"--sort", "amount", "--desc",
		"--header-color", "name=#ffaa00",
	}))

	criteria, spec, colors := listOptions(cmd, store)
	assert.Equal(t, []string{"S1"}, criteria.Stages)
	assert.Equal(t, []string{"재고관리"}, criteria.NeedsTags)
	assert.Equal(t, []string{"삼거리식품"}, criteria.Companies)
	assert.Equal(t, "ㅅㄱ", criteria.Search)
	assert.Equal(t, view.SortSpec{Column: "amount", Direction: view.Desc}, spec)
	assert.Equal(t, map[string]string{"name": "#ffaa00"}, colors)
	require.NoError(t, store.Close())

	// A fresh run with no flags rehydrates every saved selection.
	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	fresh := dealsListCmd()
	require.NoError(t, fresh.ParseFlags(nil))

	criteria, spec, colors = listOptions(fresh, reopened)
	assert.Equal(t, []string{"S1"}, criteria.Stages)
	assert.Equal(t, []string{"재고관리"}, criteria.NeedsTags)
	assert.Equal(t, []string{"삼거리식품"}, criteria.Companies)
	assert.Equal(t, "ㅅㄱ", criteria.Search)
	assert.Equal(t, view.SortSpec{Column: "amount", Direction: view.Desc}, spec)
	assert.Equal(t, map[string]string{"name": "#ffaa00"}, colors)
	require.NoError(t, reopened.Close())
}

func TestListOptionsExplicitFlagWinsOverSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store, err := prefs.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(prefs.KeyFilterStages, []string{"S1"}))
	require.NoError(t, store.Set(prefs.KeyFilterSearch, "한빛"))

	cmd := dealsListCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--stage", "S6_complete"}))

	criteria, _, _ := listOptions(cmd, store)
	assert.Equal(t, []string{"S6_complete"}, criteria.Stages)
	// Untouched dimensions still come from the saved state.
	assert.Equal(t, "한빛", criteria.Search)
	require.NoError(t, store.Close())
}

func TestQuotationsCommandSurface(t *testing.T) {
	var names []string
	for _, sub := range quotationsCmd().Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "show")
}
