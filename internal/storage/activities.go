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

// CreateActivity appends an entry to a deal's interaction log.
func (s *SQLiteStorage) CreateActivity(ctx context.Context, activity *model.Activity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if activity == nil {
		return fmt.Errorf("%w: activity", ErrNilParameter)
	}
	if err := validateString(activity.DealID, "dealID"); err != nil {
		return err
	}
	if !model.ValidActivityType(activity.Type) {
		return fmt.Errorf("invalid activity type: %q", activity.Type)
	}

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	activity.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (id, deal_id, type, date, content, assigned_to, quotation_id, attachments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.DealID, activity.Type, activity.Date,
		activity.Content, activity.AssignedTo, nullable(activity.QuotationID),
		model.EncodeAttachments(activity.Attachments), activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	slog.Info("created activity", "id", activity.ID, "deal_id", activity.DealID, "type", activity.Type)
	return nil
}

// GetActivitiesByDeal returns a deal's interaction log, most recent date
// first. Attachment JSON is parsed defensively on every read.
func (s *SQLiteStorage) GetActivitiesByDeal(ctx context.Context, dealID string) ([]model.Activity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(dealID, "dealID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, deal_id, type, date, content, assigned_to, quotation_id, attachments, created_at
		FROM activities WHERE deal_id = ?
		ORDER BY date DESC, created_at DESC`, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var date, content, assignedTo, quotationID, attachments sql.NullString
		if err := rows.Scan(&a.ID, &a.DealID, &a.Type, &date, &content,
			&assignedTo, &quotationID, &attachments, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Date = date.String
		a.Content = content.String
		a.AssignedTo = assignedTo.String
		a.QuotationID = quotationID.String
		a.Attachments = model.ParseAttachments(attachments.String)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	slog.Debug("retrieved activities", "deal_id", dealID, "count", len(activities))
	return activities, nil
}

// DeleteActivity removes a single log entry.
func (s *SQLiteStorage) DeleteActivity(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: activity %s", common.ErrNotFound, id)
	}
	return nil
}
