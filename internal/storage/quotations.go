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

// CreateQuotation inserts a quotation and its line items. Totals are
// recomputed before the write so stored amounts always match the items.
func (s *SQLiteStorage) CreateQuotation(ctx context.Context, quotation *model.Quotation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if quotation == nil {
		return fmt.Errorf("%w: quotation", ErrNilParameter)
	}
	if err := validateString(quotation.Title, "title"); err != nil {
		return err
	}

	if quotation.ID == "" {
		quotation.ID = uuid.NewString()
	}
	if quotation.Status == "" {
		quotation.Status = model.QuotationDraft
	}
	quotation.CreatedAt = time.Now()
	quotation.ComputeTotals()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotations (id, activity_id, title, status, supply, tax, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		quotation.ID, nullable(quotation.ActivityID), quotation.Title, quotation.Status,
		quotation.Supply, quotation.Tax, quotation.Total, quotation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	for i, item := range quotation.Items {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO quotation_items (quotation_id, name, quantity, unit_price, position)
			VALUES (?, ?, ?, ?, ?)`,
			quotation.ID, item.Name, item.Quantity, item.UnitPrice, i); err != nil {
			return fmt.Errorf("failed to create quotation item: %w", err)
		}
	}

	slog.Info("created quotation", "id", quotation.ID, "title", quotation.Title, "total", quotation.Total)
	return nil
}

// GetQuotation returns a quotation with its line items.
func (s *SQLiteStorage) GetQuotation(ctx context.Context, id string) (*model.Quotation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, activity_id, title, status, supply, tax, total, created_at
		FROM quotations WHERE id = ?`, id)

	q, err := scanQuotation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: quotation %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query quotation: %w", err)
	}

	items, err := s.quotationItems(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

// GetQuotations returns all quotations, newest first, without line items.
func (s *SQLiteStorage) GetQuotations(ctx context.Context) ([]model.Quotation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, activity_id, title, status, supply, tax, total, created_at
		FROM quotations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotations: %w", err)
	}
	defer rows.Close()

	var quotations []model.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		quotations = append(quotations, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotations: %w", err)
	}
	return quotations, nil
}

func scanQuotation(row rowScanner) (*model.Quotation, error) {
	var q model.Quotation
	var activityID sql.NullString
	err := row.Scan(&q.ID, &activityID, &q.Title, &q.Status, &q.Supply, &q.Tax, &q.Total, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.ActivityID = activityID.String
	return &q, nil
}

func (s *SQLiteStorage) quotationItems(ctx context.Context, quotationID string) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity, unit_price
		FROM quotation_items WHERE quotation_id = ? ORDER BY position`, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotation items: %w", err)
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan quotation item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotation items: %w", err)
	}
	return items, nil
}
