// Package report holds the pure transforms behind the three email
// reports: category aggregation, budget-health evaluation, window
// filters and per-report statistics. Everything here operates on
// already-fetched data and keeps no state between calls.
package report

import (
	"github.com/budgetbot/ynab-reporter/internal/classify"
	"github.com/budgetbot/ynab-reporter/internal/models"
)

// AggregateByCategory folds transactions into per-category spending
// totals. Split transactions are expanded: each subtransaction
// contributes to its own category and the parent's category and amount
// are ignored, so one split can increment several categories. Totals
// are major units with the sign flipped (spending positive, returns
// negative). Transfers and reconciliations are skipped outright;
// inflow categories are skipped per contribution.
func AggregateByCategory(transactions []models.Transaction) map[string]*models.CategoryAggregate {
	totals := make(map[string]*models.CategoryAggregate)

	add := func(name string, amount models.Milliunits, parent models.Transaction) {
		agg, ok := totals[name]
		if !ok {
			agg = &models.CategoryAggregate{}
			totals[name] = agg
		}
		// Spending (-100) adds +100 to the total, a return (+100)
		// subtracts 100.
		agg.Total += amount.Negate().Major()
		agg.Count++
		agg.Transactions = append(agg.Transactions, parent)
	}

	for _, t := range transactions {
		if classify.IsTransfer(t) || classify.IsReconciliation(t) {
			continue
		}

		if t.IsSplit() {
			for _, sub := range t.Subtransactions {
				name := classify.CategoryName(sub.CategoryName)
				if classify.IsInflow(name) {
					continue
				}
				add(name, sub.Amount, t)
			}
			continue
		}

		name := classify.CategoryName(t.CategoryName)
		if classify.IsInflow(name) {
			continue
		}
		add(name, t.Amount, t)
	}

	return totals
}
