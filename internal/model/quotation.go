package model

import "time"

// QuotationStatus tracks where a quotation is in its life.
type QuotationStatus string

const (
	// QuotationDraft is a quotation still being edited.
	QuotationDraft QuotationStatus = "draft"
	// QuotationSent has been delivered to the client.
	QuotationSent QuotationStatus = "sent"
	// QuotationAccepted was accepted by the client.
	QuotationAccepted QuotationStatus = "accepted"
)

// LineItem is one row of a quotation.
type LineItem struct {
	Name      string
	Quantity  int64
	UnitPrice int64 // In won; amounts have no fractional part
}

// Amount returns quantity times unit price for the line.
func (li LineItem) Amount() int64 {
	return li.Quantity * li.UnitPrice
}

// Quotation holds line items and the computed supply/tax/total amounts.
// It belongs to zero or one activity.
type Quotation struct {
	CreatedAt  time.Time
	ID         string
	ActivityID string // Empty when not linked to an activity
	Title      string
	Items      []LineItem
	Status     QuotationStatus
	Supply     int64
	Tax        int64
	Total      int64
}

// ComputeTotals recalculates supply, tax, and total from the line items.
// Tax is 10% VAT, truncated toward zero as Korean invoicing does.
func (q *Quotation) ComputeTotals() {
	var supply int64
	for _, item := range q.Items {
		supply += item.Amount()
	}
	q.Supply = supply
	q.Tax = supply / 10
	q.Total = q.Supply + q.Tax
}
