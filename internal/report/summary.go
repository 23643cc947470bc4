package report

import (
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/stage"
)

// ClientStatus is the derived engagement state of an account.
type ClientStatus string

const (
	// ClientActive has an active contract or an open opportunity.
	ClientActive ClientStatus = "active"
	// ClientManaged has contracts, but none active and nothing open.
	ClientManaged ClientStatus = "managed"
	// ClientInactive has neither.
	ClientInactive ClientStatus = "inactive"
)

// Summary holds the client-list headline counts.
type Summary struct {
	Total           int
	Active          int
	Managed         int
	Inactive        int
	ExpiringSoon    int // contract end date within today..+30 days
	WithOpportunity int // accounts with at least one open deal
}

// expiringWindowDays is how far ahead a contract end date counts as
// expiring soon.
const expiringWindowDays = 30

// OpenDeal reports whether a deal is an open (non-terminal) opportunity.
func OpenDeal(d model.Deal) bool {
	return stage.Resolve(d.Stage).Group != stage.GroupDone
}

// ClassifyClient derives one account's status from its contracts and its
// count of open deals.
func ClassifyClient(contracts []model.Contract, openDeals int) ClientStatus {
	hasActive := false
	for _, c := range contracts {
		if c.Status == model.ContractActive {
			hasActive = true
			break
		}
	}

	switch {
	case hasActive || openDeals > 0:
		return ClientActive
	case len(contracts) > 0:
		return ClientManaged
	default:
		return ClientInactive
	}
}

// ExpiringSoon reports whether any contract ends within the expiring
// window, today inclusive. Contracts whose end date fails to parse are
// ignored.
func ExpiringSoon(contracts []model.Contract) bool {
	for _, c := range contracts {
		days, ok := normalize.DaysUntil(c.EndDate)
		if ok && days >= 0 && days <= expiringWindowDays {
			return true
		}
	}
	return false
}

// Summarize computes the client-list summary across all accounts.
// contracts maps account ID to that account's contracts; deals is the
// full pipeline.
func Summarize(accounts []model.Account, contracts map[string][]model.Contract, deals []model.Deal) Summary {
	openByAccount := make(map[string]int)
	for _, d := range deals {
		if OpenDeal(d) {
			openByAccount[d.AccountID]++
		}
	}

	s := Summary{Total: len(accounts)}
	for _, a := range accounts {
		open := openByAccount[a.ID]
		if open > 0 {
			s.WithOpportunity++
		}

		switch ClassifyClient(contracts[a.ID], open) {
		case ClientActive:
			s.Active++
		case ClientManaged:
			s.Managed++
		case ClientInactive:
			s.Inactive++
		}

		if ExpiringSoon(contracts[a.ID]) {
			s.ExpiringSoon++
		}
	}
	return s
}
