package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
	"github.com/lakmicro/lending-engine/pkg/utils"
)

// SortKey selects the descending sort order of a collection report.
type SortKey string

const (
	SortByPriority SortKey = "priority"
	SortByAmount   SortKey = "amount"
	SortByOverdue  SortKey = "overdue"
)

// LoanSnapshot is the read-only view of one active loan the prioritizer
// works from: fixed terms plus the payments made so far.
type LoanSnapshot struct {
	LoanID            string
	CustomerID        string
	InstallmentAmount decimal.Decimal
	DurationWeeks     int
	PaidInstallments  int
	StartDate         time.Time
	TotalPaid         decimal.Decimal
}

var two = decimal.NewFromInt(2)

// Prioritize derives a ranked collection work list from a snapshot of
// active loans. Loans with nothing to collect are excluded. Ties are broken
// by loan id so the output is deterministic for identical inputs.
func Prioritize(snapshots []LoanSnapshot, key SortKey, asOf time.Time) []*domain.CollectionItem {
	items := make([]*domain.CollectionItem, 0, len(snapshots))
	for _, snap := range snapshots {
		item := assess(snap, asOf)
		if item != nil {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case SortByAmount:
			if !a.DueAmount.Equal(b.DueAmount) {
				return a.DueAmount.GreaterThan(b.DueAmount)
			}
		case SortByOverdue:
			if a.OverdueWeeks != b.OverdueWeeks {
				return a.OverdueWeeks > b.OverdueWeeks
			}
		default:
			if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
				return pa > pb
			}
		}
		return a.LoanID < b.LoanID
	})

	return items
}

func assess(snap LoanSnapshot, asOf time.Time) *domain.CollectionItem {
	expected := utils.ElapsedWeeks(snap.StartDate, asOf)
	if expected > snap.DurationWeeks {
		expected = snap.DurationWeeks
	}

	overdueWeeks := expected - snap.PaidInstallments
	if overdueWeeks < 0 {
		overdueWeeks = 0
	}

	expectedAmount := snap.InstallmentAmount.Mul(decimal.NewFromInt(int64(expected)))
	dueAmount := expectedAmount.Sub(snap.TotalPaid)
	if dueAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	return &domain.CollectionItem{
		LoanID:       snap.LoanID,
		CustomerID:   snap.CustomerID,
		DueAmount:    dueAmount,
		OverdueWeeks: overdueWeeks,
		Priority:     tier(overdueWeeks, dueAmount, snap.InstallmentAmount),
	}
}

// tier assigns the collection priority, first match wins.
func tier(overdueWeeks int, dueAmount, installment decimal.Decimal) string {
	switch {
	case overdueWeeks >= 3 || dueAmount.GreaterThanOrEqual(installment.Mul(two)):
		return domain.PriorityHigh
	case overdueWeeks >= 1 || dueAmount.GreaterThanOrEqual(installment):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func priorityRank(p string) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityMedium:
		return 2
	default:
		return 1
	}
}
