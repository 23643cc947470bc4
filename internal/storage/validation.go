package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/karyhub/dealflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidCell    = errors.New("cell index out of range")
	ErrInvalidDeal    = errors.New("invalid deal")
	ErrInvalidAccount = errors.New("invalid account")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDeal validates a deal before it is written.
func validateDeal(deal *model.Deal) error {
	if deal == nil {
		return fmt.Errorf("%w: deal", ErrNilParameter)
	}
	if strings.TrimSpace(deal.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDeal)
	}
	if strings.TrimSpace(deal.Stage) == "" {
		return fmt.Errorf("%w: stage is required", ErrInvalidDeal)
	}
	return nil
}

// validateAccount validates an account before it is written.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	return nil
}

// validateCell ensures a strategy cell index is in range.
func validateCell(cell int) error {
	if cell < 0 || cell >= model.StrategyCellCount {
		return fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	return nil
}
