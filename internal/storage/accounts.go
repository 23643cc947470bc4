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

const accountColumns = `id, name, industry, region, contact_name, phone, email, memo, created_at`

// CreateAccount inserts a new company profile.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, industry, region, contact_name, phone, email, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Industry, account.Region,
		account.ContactName, account.Phone, account.Email, account.Memo, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("created account", "id", account.ID, "name", account.Name)
	return nil
}

// GetAccount returns an account by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

// GetAccountByName returns the account with the given name, or nil when
// no account matches.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE name = ?`, name)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

// GetAccounts returns every account ordered by name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	slog.Debug("retrieved accounts", "count", len(accounts))
	return accounts, nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var a model.Account
	var industry, region, contactName, phone, email, memo sql.NullString

	err := row.Scan(&a.ID, &a.Name, &industry, &region, &contactName, &phone, &email, &memo, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Industry = industry.String
	a.Region = region.String
	a.ContactName = contactName.String
	a.Phone = phone.String
	a.Email = email.String
	a.Memo = memo.String
	return &a, nil
}

// CreateContract inserts a contract row for an account.
func (s *SQLiteStorage) CreateContract(ctx context.Context, contract *model.Contract) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if contract == nil {
		return fmt.Errorf("%w: contract", ErrNilParameter)
	}
	if err := validateString(contract.AccountID, "accountID"); err != nil {
		return err
	}

	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	if contract.Status == "" {
		contract.Status = model.ContractActive
	}
	contract.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contracts (id, account_id, title, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contract.ID, contract.AccountID, contract.Title,
		contract.StartDate, contract.EndDate, contract.Status, contract.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	slog.Info("created contract", "id", contract.ID, "account_id", contract.AccountID)
	return nil
}

// GetContractsByAccount returns one account's contracts, newest first.
func (s *SQLiteStorage) GetContractsByAccount(ctx context.Context, accountID string) ([]model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, title, start_date, end_date, status, created_at
		FROM contracts WHERE account_id = ? ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	return collectContracts(rows)
}

// GetAllContracts returns every contract grouped by account ID.
func (s *SQLiteStorage) GetAllContracts(ctx context.Context) (map[string][]model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, title, start_date, end_date, status, created_at
		FROM contracts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	contracts, err := collectContracts(rows)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string][]model.Contract)
	for _, c := range contracts {
		byAccount[c.AccountID] = append(byAccount[c.AccountID], c)
	}
	return byAccount, nil
}

func collectContracts(rows *sql.Rows) ([]model.Contract, error) {
	var contracts []model.Contract
	for rows.Next() {
		var c model.Contract
		var title, startDate, endDate sql.NullString
		if err := rows.Scan(&c.ID, &c.AccountID, &title, &startDate, &endDate, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		c.Title = title.String
		c.StartDate = startDate.String
		c.EndDate = endDate.String
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contracts: %w", err)
	}
	return contracts, nil
}
