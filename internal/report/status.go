package report

import (
	"github.com/budgetbot/ynab-reporter/internal/classify"
	"github.com/budgetbot/ynab-reporter/internal/models"
)

// unknownCategoryName labels a snapshot the API returned without a name.
const unknownCategoryName = "Unknown"

// EvaluateBudgets classifies each current-month category snapshot as
// overspent, warning or underfunded. Classification is mutually
// exclusive and checked in that order: a negative balance always wins,
// so a category cannot be reported underfunded while overspent.
// Inflow categories and categories with no budget are skipped.
func EvaluateBudgets(categories []models.CategorySnapshot, thresholdPercent float64) models.BudgetStatus {
	var status models.BudgetStatus

	for _, cat := range categories {
		name := unknownCategoryName
		if cat.Name != nil && *cat.Name != "" {
			name = *cat.Name
		}
		if classify.IsInflow(name) {
			continue
		}

		budgeted := cat.Budgeted.Major()
		if budgeted == 0 {
			continue
		}
		spent := cat.Activity.Abs().Major()
		balance := cat.Balance.Major()

		percentUsed := 0.0
		if budgeted > 0 {
			percentUsed = spent / budgeted * 100
		}

		entry := models.CategoryStatus{
			Name:        name,
			Budgeted:    budgeted,
			Activity:    spent,
			Balance:     balance,
			PercentUsed: percentUsed,
		}

		switch {
		case balance < 0:
			status.Overspent = append(status.Overspent, entry)
		case percentUsed >= thresholdPercent:
			status.Warning = append(status.Warning, entry)
		case balance > budgeted*2:
			// More than double the monthly budget sitting unused.
			status.Underfunded = append(status.Underfunded, entry)
		}
	}

	return status
}
