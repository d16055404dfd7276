package domain

import "github.com/shopspring/decimal"

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// CollectionItem is a derived, per-report view of one active loan's
// collection position. It is computed fresh for each report and never
// persisted or cached past report generation.
type CollectionItem struct {
	LoanID       string          `json:"loan_id"`
	CustomerID   string          `json:"customer_id"`
	DueAmount    decimal.Decimal `json:"due_amount"`
	OverdueWeeks int             `json:"overdue_weeks"`
	Priority     string          `json:"priority"`
}

type CollectionReportResponse struct {
	GeneratedFor string            `json:"generated_for"` // as-of date, YYYY-MM-DD
	Items        []*CollectionItem `json:"items"`
}
