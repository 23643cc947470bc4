package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

const stageBandKeyPrefix = "stage_band:"

// GetStageBands returns the configured rate band per stage, with
// report.DefaultBands filling any stage that has no override.
func (s *SQLiteStorage) GetStageBands(ctx context.Context) (map[stage.Code]report.Band, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	bands := report.DefaultBands()

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM settings WHERE key LIKE ?`, stageBandKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query stage bands: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		// LIKE treats '_' as a single-character wildcard, so near-miss
		// keys can slip through the query.
		if !strings.HasPrefix(key, stageBandKeyPrefix) {
			continue
		}
		code := stage.Code(key[len(stageBandKeyPrefix):])
		if _, ok := stage.Lookup(code); !ok {
			continue
		}

		var band report.Band
		if err := json.Unmarshal([]byte(value), &band); err != nil {
			// A corrupt override falls back to the default band.
			continue
		}
		bands[code] = band
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return bands, nil
}

// SetStageBand stores a band override for one stage.
func (s *SQLiteStorage) SetStageBand(ctx context.Context, code stage.Code, band report.Band) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, ok := stage.Lookup(code); !ok {
		return fmt.Errorf("unknown stage code: %q", code)
	}
	if band.Min > band.Max {
		return fmt.Errorf("band min %.1f exceeds max %.1f", band.Min, band.Max)
	}

	value, err := json.Marshal(band)
	if err != nil {
		return fmt.Errorf("failed to encode band: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		stageBandKeyPrefix+string(code), string(value), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save stage band: %w", err)
	}
	return nil
}
