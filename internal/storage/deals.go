package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karyhub/dealflow/internal/common"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/service"
	"github.com/karyhub/dealflow/internal/stage"
)

const dealColumns = `id, name, account_id, stage, assigned_to,
	first_contact_date, next_contact_date, last_activity_date,
	amount_range, needs_summary, priority, grade, close_reason,
	created_at, updated_at`

// CreateDeal inserts a new pipeline record. A missing ID is generated.
func (s *SQLiteStorage) CreateDeal(ctx context.Context, deal *model.Deal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDeal(deal); err != nil {
		return err
	}

	if deal.ID == "" {
		deal.ID = uuid.NewString()
	}
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deals (id, name, account_id, stage, assigned_to,
			first_contact_date, next_contact_date, last_activity_date,
			amount_range, needs_summary, priority, grade, close_reason,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.Name, nullable(deal.AccountID), deal.Stage, deal.AssignedTo,
		deal.FirstContactDate, deal.NextContactDate, deal.LastActivityDate,
		deal.AmountRange, deal.NeedsSummary, deal.Priority, deal.Grade, deal.CloseReason,
		deal.CreatedAt, deal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	slog.Info("created deal", "id", deal.ID, "name", deal.Name, "stage", deal.Stage)
	return nil
}

// GetDeal returns a single deal by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id = ?`, id)

	deal, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: deal %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query deal: %w", err)
	}
	return deal, nil
}

// GetDeals returns every pipeline record, newest first.
func (s *SQLiteStorage) GetDeals(ctx context.Context) ([]model.Deal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryDeals(ctx, `SELECT `+dealColumns+` FROM deals ORDER BY created_at DESC`)
}

// GetDealsByAccount returns the records referencing one account.
func (s *SQLiteStorage) GetDealsByAccount(ctx context.Context, accountID string) ([]model.Deal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	return s.queryDeals(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE account_id = ? ORDER BY created_at DESC`, accountID)
}

func (s *SQLiteStorage) queryDeals(ctx context.Context, query string, args ...any) ([]model.Deal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, *deal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deals: %w", err)
	}

	slog.Debug("retrieved deals", "count", len(deals))
	return deals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDeal maps one raw row to a typed record. Nullable text columns are
// folded to empty strings here, at the data-access boundary.
func scanDeal(row rowScanner) (*model.Deal, error) {
	var deal model.Deal
	var accountID, assignedTo, firstContact, nextContact, lastActivity sql.NullString
	var amountRange, needsSummary, priority, grade, closeReason sql.NullString

	err := row.Scan(&deal.ID, &deal.Name, &accountID, &deal.Stage, &assignedTo,
		&firstContact, &nextContact, &lastActivity,
		&amountRange, &needsSummary, &priority, &grade, &closeReason,
		&deal.CreatedAt, &deal.UpdatedAt)
	if err != nil {
		return nil, err
	}

	deal.AccountID = accountID.String
	deal.AssignedTo = assignedTo.String
	deal.FirstContactDate = firstContact.String
	deal.NextContactDate = nextContact.String
	deal.LastActivityDate = lastActivity.String
	deal.AmountRange = amountRange.String
	deal.NeedsSummary = needsSummary.String
	deal.Priority = priority.String
	deal.Grade = grade.String
	deal.CloseReason = closeReason.String
	return &deal, nil
}

// PatchDeal applies a partial field update. Stage changes must go through
// ChangeStage so the transition rules run.
func (s *SQLiteStorage) PatchDeal(ctx context.Context, id string, patch service.DealPatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if patch.Stage != nil {
		return fmt.Errorf("%w: use ChangeStage for stage updates", common.ErrInvalidStage)
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("name", patch.Name)
	add("assigned_to", patch.AssignedTo)
	add("first_contact_date", patch.FirstContactDate)
	add("next_contact_date", patch.NextContactDate)
	add("last_activity_date", patch.LastActivityDate)
	add("amount_range", patch.AmountRange)
	add("needs_summary", patch.NeedsSummary)
	add("priority", patch.Priority)
	add("grade", patch.Grade)
	add("close_reason", patch.CloseReason)

	if len(sets) == 1 {
		return nil // nothing to update
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE deals SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to patch deal: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: deal %s", common.ErrNotFound, id)
	}

	slog.Debug("patched deal", "id", id, "fields", len(sets)-1)
	return nil
}

// ChangeStage moves a record to a new stage, enforcing the transition
// rules: closed and recontact stages require a reason in the same update,
// and won or closed stages clear the next contact date.
func (s *SQLiteStorage) ChangeStage(ctx context.Context, id, newStage, reason string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(newStage, "newStage"); err != nil {
		return err
	}

	// The rule check runs before anything is written.
	if stage.RequiresReason(newStage) && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: %s", common.ErrReasonRequired, stage.Label(newStage))
	}

	sets := []string{"stage = ?", "updated_at = ?"}
	args := []any{newStage, time.Now()}

	if strings.TrimSpace(reason) != "" {
		sets = append(sets, "close_reason = ?")
		args = append(args, reason)
	}
	if stage.ClearsNextContact(newStage) {
		sets = append(sets, "next_contact_date = ''")
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		`UPDATE deals SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to change stage: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: deal %s", common.ErrNotFound, id)
	}

	slog.Info("changed stage", "id", id, "stage", newStage, "reason", reason)
	return nil
}

// DeleteDeal removes a record and its dependent activities, each step an
// independent call; a failure partway leaves the earlier steps in place.
// With DeleteAccount set, the referenced account is removed last when no
// other deal references it. Attachment blobs are the caller's to remove
// before this runs.
func (s *SQLiteStorage) DeleteDeal(ctx context.Context, id string, opts service.DeleteDealOptions) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	deal, err := s.GetDeal(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE deal_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	if opts.DeleteAccount && deal.AccountID != "" {
		var remaining int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM deals WHERE account_id = ?`, deal.AccountID).Scan(&remaining); err != nil {
			return fmt.Errorf("failed to count account deals: %w", err)
		}
		if remaining == 0 {
			if _, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, deal.AccountID); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}
			slog.Info("deleted account with last deal", "account_id", deal.AccountID)
		}
	}

	slog.Info("deleted deal", "id", id)
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
