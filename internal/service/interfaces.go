// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

// DealPatch is a partial update to a pipeline record. Nil fields are
// left untouched; each edit writes only the fields the user changed.
type DealPatch struct {
	Name             *string
	Stage            *string
	AssignedTo       *string
	FirstContactDate *string
	NextContactDate  *string
	LastActivityDate *string
	AmountRange      *string
	NeedsSummary     *string
	Priority         *string
	Grade            *string
	CloseReason      *string
}

// DeleteDealOptions controls the cascade when a record is removed.
type DeleteDealOptions struct {
	// DeleteAccount removes the referenced account after the record,
	// when no other record references it.
	DeleteAccount bool
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Deal operations
	CreateDeal(ctx context.Context, deal *model.Deal) error
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
	GetDeals(ctx context.Context) ([]model.Deal, error)
	GetDealsByAccount(ctx context.Context, accountID string) ([]model.Deal, error)
	PatchDeal(ctx context.Context, id string, patch DealPatch) error
	ChangeStage(ctx context.Context, id, newStage, reason string) error
	DeleteDeal(ctx context.Context, id string, opts DeleteDealOptions) error

	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	GetAccounts(ctx context.Context) ([]model.Account, error)

	// Contract operations
	CreateContract(ctx context.Context, contract *model.Contract) error
	GetContractsByAccount(ctx context.Context, accountID string) ([]model.Contract, error)
	GetAllContracts(ctx context.Context) (map[string][]model.Contract, error)

	// Activity operations
	CreateActivity(ctx context.Context, activity *model.Activity) error
	GetActivitiesByDeal(ctx context.Context, dealID string) ([]model.Activity, error)
	DeleteActivity(ctx context.Context, id string) error

	// Quotation operations
	CreateQuotation(ctx context.Context, quotation *model.Quotation) error
	GetQuotation(ctx context.Context, id string) (*model.Quotation, error)
	GetQuotations(ctx context.Context) ([]model.Quotation, error)

	// Strategy matrix operations
	GetStrategyCategories(ctx context.Context) ([]model.StrategyCategory, error)
	CreateStrategyCategory(ctx context.Context, category *model.StrategyCategory) error
	CreateStrategyItem(ctx context.Context, item *model.StrategyItem) error
	UpdateStrategyCell(ctx context.Context, itemID string, cell int, text, color string) error
	GetStrategyHistory(ctx context.Context, itemID string) ([]model.StrategyHistory, error)

	// Stage band settings
	GetStageBands(ctx context.Context) (map[stage.Code]report.Band, error)
	SetStageBand(ctx context.Context, code stage.Code, band report.Band) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// BlobStore is the attachment storage collaborator.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte) error
	PublicURL(bucket, path string) string
	Remove(ctx context.Context, bucket string, paths []string) error
}

// ReportWriter exports a pipeline report to an external surface.
type ReportWriter interface {
	Write(ctx context.Context, rep report.Report, summary report.Summary) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
