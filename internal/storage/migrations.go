package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					industry TEXT,
					region TEXT,
					contact_name TEXT,
					phone TEXT,
					email TEXT,
					memo TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_accounts_name ON accounts(name)`,

				`CREATE TABLE IF NOT EXISTS deals (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					account_id TEXT,
					stage TEXT NOT NULL,
					assigned_to TEXT,
					first_contact_date TEXT,
					next_contact_date TEXT,
					last_activity_date TEXT,
					amount_range TEXT,
					needs_summary TEXT,
					priority TEXT,
					grade TEXT,
					close_reason TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_deals_stage ON deals(stage)`,
				`CREATE INDEX idx_deals_account ON deals(account_id)`,

				`CREATE TABLE IF NOT EXISTS activities (
					id TEXT PRIMARY KEY,
					deal_id TEXT NOT NULL,
					type TEXT NOT NULL,
					date TEXT,
					content TEXT,
					assigned_to TEXT,
					quotation_id TEXT,
					attachments TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (deal_id) REFERENCES deals(id)
				)`,
				`CREATE INDEX idx_activities_deal ON activities(deal_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add quotations with line items",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS quotations (
					id TEXT PRIMARY KEY,
					activity_id TEXT,
					title TEXT NOT NULL,
					status TEXT NOT NULL DEFAULT 'draft',
					supply INTEGER NOT NULL DEFAULT 0,
					tax INTEGER NOT NULL DEFAULT 0,
					total INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS quotation_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					quotation_id TEXT NOT NULL,
					name TEXT NOT NULL,
					quantity INTEGER NOT NULL,
					unit_price INTEGER NOT NULL,
					position INTEGER NOT NULL DEFAULT 0,
					FOREIGN KEY (quotation_id) REFERENCES quotations(id)
				)`,
				`CREATE INDEX idx_quotation_items_quotation ON quotation_items(quotation_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add sales strategy matrix with cell history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS strategy_categories (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					position INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS strategy_items (
					id TEXT PRIMARY KEY,
					category_id TEXT NOT NULL,
					title TEXT NOT NULL,
					position INTEGER NOT NULL DEFAULT 0,
					cell0_text TEXT, cell0_color TEXT,
					cell1_text TEXT, cell1_color TEXT,
					cell2_text TEXT, cell2_color TEXT,
					cell3_text TEXT, cell3_color TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (category_id) REFERENCES strategy_categories(id)
				)`,
				`CREATE TABLE IF NOT EXISTS strategy_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item_id TEXT NOT NULL,
					cell INTEGER NOT NULL,
					old_value TEXT,
					new_value TEXT,
					changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (item_id) REFERENCES strategy_items(id)
				)`,
				`CREATE INDEX idx_strategy_history_item ON strategy_history(item_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     4,
		Description: "Add contracts and stage band settings",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS contracts (
					id TEXT PRIMARY KEY,
					account_id TEXT NOT NULL,
					title TEXT,
					start_date TEXT,
					end_date TEXT,
					status TEXT NOT NULL DEFAULT 'active',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (account_id) REFERENCES accounts(id)
				)`,
				`CREATE INDEX idx_contracts_account ON contracts(account_id)`,

				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
