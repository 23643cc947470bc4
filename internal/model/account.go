package model

import "time"

// Account represents a company profile that one or more deals reference.
type Account struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Industry    string
	Region      string
	ContactName string
	Phone       string
	Email       string
	Memo        string
}

// ContractStatus indicates the lifecycle state of a contract.
type ContractStatus string

const (
	// ContractActive means the contract is currently in force.
	ContractActive ContractStatus = "active"
	// ContractExpired means the contract's end date has passed.
	ContractExpired ContractStatus = "expired"
	// ContractTerminated means the contract was ended early.
	ContractTerminated ContractStatus = "terminated"
)

// Contract links an account to a service period. The client-list summary
// classification (active/managed/inactive, expiring soon) is derived from
// these rows together with the account's open deals.
type Contract struct {
	CreatedAt time.Time
	ID        string
	AccountID string
	Title     string
	StartDate string // "YYYY-MM-DD"
	EndDate   string // "YYYY-MM-DD"
	Status    ContractStatus
}
