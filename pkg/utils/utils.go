package utils

import "time"

// CalculateDueDate returns the due date for a given week number. Weekly
// installments fall due every 7 days from disbursement: week 1 is due 7
// days after the start date, week 2 after 14, and so on.
func CalculateDueDate(loanStartDate time.Time, weekNumber int) time.Time {
	return loanStartDate.AddDate(0, 0, weekNumber*7)
}

// ElapsedWeeks returns the number of whole weeks between start and now,
// which equals the number of installments that have fallen due.
func ElapsedWeeks(loanStartDate, now time.Time) int {
	if !now.After(loanStartDate) {
		return 0
	}
	days := int(now.Sub(loanStartDate).Hours() / 24)
	return days / 7
}

// GetCurrentWeek returns the 1-based schedule week containing now.
func GetCurrentWeek(loanStartDate, now time.Time) int {
	week := ElapsedWeeks(loanStartDate, now) + 1
	if week < 1 {
		return 1
	}
	return week
}

// IsDateOverdue reports whether a due date has passed as of the given time.
func IsDateOverdue(dueDate, asOf time.Time) bool {
	return asOf.After(dueDate)
}

// WeeksOverdue returns how many overdue periods a due date has accumulated
// as of the given time: one the moment the due date passes, another for
// each full week after it.
func WeeksOverdue(dueDate, asOf time.Time) int {
	if !asOf.After(dueDate) {
		return 0
	}
	days := int(asOf.Sub(dueDate).Hours() / 24)
	return days/7 + 1
}
