package report

import (
	"sort"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/classify"
	"github.com/budgetbot/ynab-reporter/internal/models"
)

// FilterSpending keeps the transactions that count toward spending:
// transfers, reconciliations and inflow-categorized transactions are
// dropped. When excludeScheduled is set, transactions materialized
// from a schedule are dropped too; the weekly and monthly actual-
// spending views set it, the uncategorized view does not.
func FilterSpending(transactions []models.Transaction, excludeScheduled bool) []models.Transaction {
	var kept []models.Transaction
	for _, t := range transactions {
		if excludeScheduled && t.ScheduledTransactionID != nil && *t.ScheduledTransactionID != "" {
			continue
		}
		if !classify.Countable(t) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// FilterMonth keeps the transactions dated within the given calendar
// month.
func FilterMonth(transactions []models.Transaction, year int, month time.Month) []models.Transaction {
	var kept []models.Transaction
	for _, t := range transactions {
		if t.Date.SameMonth(year, month) {
			kept = append(kept, t)
		}
	}
	return kept
}

// FilterUncategorized keeps the countable transactions that still lack
// a category. Scheduled echoes are kept: a materialized but
// uncategorized transaction is still worth reporting.
func FilterUncategorized(transactions []models.Transaction) []models.Transaction {
	var kept []models.Transaction
	for _, t := range FilterSpending(transactions, false) {
		noID := t.CategoryID == nil || *t.CategoryID == ""
		if noID || classify.CategoryName(t.CategoryName) == classify.UncategorizedName {
			kept = append(kept, t)
		}
	}
	return kept
}

// SortByDateDesc orders transactions newest first, in place.
func SortByDateDesc(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date.Time)
	})
}

// UpcomingScheduled returns the scheduled transactions whose next
// occurrence falls within [today, today+daysAhead], ascending by date.
func UpcomingScheduled(scheduled []models.ScheduledTransaction, today time.Time, daysAhead int) []models.ScheduledTransaction {
	start := models.DateOf(today).Time
	end := start.AddDate(0, 0, daysAhead)

	var upcoming []models.ScheduledTransaction
	for _, st := range scheduled {
		if st.DateNext.IsZero() {
			continue
		}
		next := st.DateNext.Time
		if !next.Before(start) && !next.After(end) {
			upcoming = append(upcoming, st)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DateNext.Before(upcoming[j].DateNext.Time)
	})
	return upcoming
}

// RecurringThisMonth returns the recurring scheduled transactions whose
// next occurrence falls in today's calendar month, ascending by date.
func RecurringThisMonth(scheduled []models.ScheduledTransaction, today time.Time) []models.ScheduledTransaction {
	var recurring []models.ScheduledTransaction
	for _, st := range scheduled {
		if !st.IsRecurring() {
			continue
		}
		if st.DateNext.SameMonth(today.Year(), today.Month()) {
			recurring = append(recurring, st)
		}
	}
	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].DateNext.Before(recurring[j].DateNext.Time)
	})
	return recurring
}
