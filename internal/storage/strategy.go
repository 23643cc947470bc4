package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/karyhub/dealflow/internal/common"
	"github.com/karyhub/dealflow/internal/model"
)

// GetStrategyCategories returns the full strategy matrix: categories in
// position order, each with its items and cell contents.
func (s *SQLiteStorage) GetStrategyCategories(ctx context.Context) ([]model.StrategyCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, position, created_at
		FROM strategy_categories ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy categories: %w", err)
	}
	defer rows.Close()

	var categories []model.StrategyCategory
	for rows.Next() {
		var c model.StrategyCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan strategy category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy categories: %w", err)
	}

	for i := range categories {
		items, err := s.strategyItems(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}
	return categories, nil
}

func (s *SQLiteStorage) strategyItems(ctx context.Context, categoryID string) ([]model.StrategyItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, title, position,
			cell0_text, cell0_color, cell1_text, cell1_color,
			cell2_text, cell2_color, cell3_text, cell3_color,
			created_at
		FROM strategy_items WHERE category_id = ? ORDER BY position, title`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy items: %w", err)
	}
	defer rows.Close()

	var items []model.StrategyItem
	for rows.Next() {
		var item model.StrategyItem
		var texts, colors [model.StrategyCellCount]sql.NullString
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Title, &item.Position,
			&texts[0], &colors[0], &texts[1], &colors[1],
			&texts[2], &colors[2], &texts[3], &colors[3],
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan strategy item: %w", err)
		}
		for i := 0; i < model.StrategyCellCount; i++ {
			item.Cells[i] = model.StrategyCell{Text: texts[i].String, Color: colors[i].String}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy items: %w", err)
	}
	return items, nil
}

// CreateStrategyCategory adds a heading to the strategy matrix.
func (s *SQLiteStorage) CreateStrategyCategory(ctx context.Context, category *model.StrategyCategory) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.Name, "name"); err != nil {
		return err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strategy_categories (id, name, position, created_at)
		VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.Position, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create strategy category: %w", err)
	}
	return nil
}

// CreateStrategyItem adds a row beneath a category.
func (s *SQLiteStorage) CreateStrategyItem(ctx context.Context, item *model.StrategyItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if err := validateString(item.CategoryID, "categoryID"); err != nil {
		return err
	}
	if err := validateString(item.Title, "title"); err != nil {
		return err
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strategy_items (id, category_id, title, position,
			cell0_text, cell0_color, cell1_text, cell1_color,
			cell2_text, cell2_color, cell3_text, cell3_color,
			created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.CategoryID, item.Title, item.Position,
		item.Cells[0].Text, item.Cells[0].Color, item.Cells[1].Text, item.Cells[1].Color,
		item.Cells[2].Text, item.Cells[2].Color, item.Cells[3].Text, item.Cells[3].Color,
		item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create strategy item: %w", err)
	}
	return nil
}

// UpdateStrategyCell writes one cell's text and color and appends a
// history entry recording the old and new value. Cells are never
// deleted, only superseded.
func (s *SQLiteStorage) UpdateStrategyCell(ctx context.Context, itemID string, cell int, text, color string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}
	if err := validateCell(cell); err != nil {
		return err
	}

	textCol := fmt.Sprintf("cell%d_text", cell)
	colorCol := fmt.Sprintf("cell%d_color", cell)

	var old sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT `+textCol+` FROM strategy_items WHERE id = ?`, itemID).Scan(&old)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: strategy item %s", common.ErrNotFound, itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to read strategy cell: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE strategy_items SET `+textCol+` = ?, `+colorCol+` = ? WHERE id = ?`,
		text, color, itemID); err != nil {
		return fmt.Errorf("failed to update strategy cell: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO strategy_history (item_id, cell, old_value, new_value, changed_at)
		VALUES (?, ?, ?, ?, ?)`,
		itemID, cell, old.String, text, time.Now()); err != nil {
		return fmt.Errorf("failed to record strategy history: %w", err)
	}

	slog.Debug("updated strategy cell", "item_id", itemID, "cell", cell)
	return nil
}

// GetStrategyHistory returns a cell-edit log for one item, newest first.
func (s *SQLiteStorage) GetStrategyHistory(ctx context.Context, itemID string) ([]model.StrategyHistory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, item_id, cell, old_value, new_value, changed_at
		FROM strategy_history WHERE item_id = ? ORDER BY changed_at DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy history: %w", err)
	}
	defer rows.Close()

	var history []model.StrategyHistory
	for rows.Next() {
		var h model.StrategyHistory
		var oldValue, newValue sql.NullString
		if err := rows.Scan(&h.ID, &h.ItemID, &h.Cell, &oldValue, &newValue, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan strategy history: %w", err)
		}
		h.OldValue = oldValue.String
		h.NewValue = newValue.String
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy history: %w", err)
	}
	return history, nil
}
