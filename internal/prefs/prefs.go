// Package prefs persists per-user UI state: saved filter selections,
// sort order, and display colors. State lives in one JSON file and
// writes are debounced so rapid toggling does not thrash the disk.
package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/karyhub/dealflow/internal/common"
)

// Well-known preference keys.
const (
	KeyFilterStages    = "filter.stages"
	KeyFilterOwners    = "filter.assignees"
	KeyFilterAmounts   = "filter.amounts"
	KeyFilterNeeds     = "filter.needs"
	KeyFilterCompanies = "filter.companies"
	KeyFilterSearch    = "filter.search"
	KeySortColumn      = "sort.column"
	KeySortDesc        = "sort.desc"
	KeyHeaderColors    = "display.header_colors"
)

// Store is a debounced JSON key-value store.
type Store struct {
	mu       sync.Mutex
	path     string
	values   map[string]json.RawMessage
	debounce *common.Debouncer
}

// Open loads the preference file at path, creating an empty store when
// the file does not exist. A corrupt file starts fresh rather than
// blocking startup.
func Open(path string) (*Store, error) {
	return open(path, common.DefaultDebounceIdle)
}

func open(path string, idle time.Duration) (*Store, error) {
	s := &Store{
		path:     path,
		values:   make(map[string]json.RawMessage),
		debounce: common.NewDebouncer(idle),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		slog.Warn("preference file is corrupt, starting fresh", "path", path, "error", err)
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get decodes the value under key into out. The second return is false
// when the key is absent or the stored value does not decode.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set stores a value under key and schedules a save.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		if err := s.save(); err != nil {
			slog.Error("failed to save preferences", "error", err)
		}
	})
	return nil
}

// Delete removes a key and schedules a save.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		if err := s.save(); err != nil {
			slog.Error("failed to save preferences", "error", err)
		}
	})
}

// Close flushes any pending save.
func (s *Store) Close() error {
	s.debounce.Flush()
	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	path := s.path
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	// Write-then-rename keeps the file whole if the process dies mid-save.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
