package report

import (
	"sort"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/models"
)

// BuildDaily assembles the daily alert bundle from the uncategorized
// transaction list and the budget-health evaluation.
func BuildDaily(uncategorized []models.Transaction, status models.BudgetStatus, threshold float64, now time.Time) models.DailyReport {
	return models.DailyReport{
		CurrentDate:        now.Format("Monday, January 2, 2006"),
		Uncategorized:      uncategorized,
		UncategorizedCount: len(uncategorized),
		Status:             status,
		Threshold:          threshold,
	}
}

// BuildWeekly assembles the weekly recap bundle. TotalSpent is the sum
// of absolute major-unit amounts over the raw filtered list, computed
// independently of the aggregate so the two can be cross-checked.
func BuildWeekly(transactions []models.Transaction, spending map[string]*models.CategoryAggregate,
	upcoming []models.ScheduledTransaction, status models.BudgetStatus, now time.Time) models.WeeklyReport {

	return models.WeeklyReport{
		WeekStart:        now.AddDate(0, 0, -7).Format("January 2"),
		WeekEnd:          now.Format("January 2, 2006"),
		TotalSpent:       TotalSpent(transactions),
		TransactionCount: len(transactions),
		Spending:         spending,
		Upcoming:         upcoming,
		Status:           status,
	}
}

// BuildMonthly assembles the monthly recap bundle for the calendar
// month preceding now.
func BuildMonthly(transactions []models.Transaction, spending map[string]*models.CategoryAggregate,
	recurring []models.ScheduledTransaction, now time.Time) models.MonthlyReport {

	totalSpent := TotalSpent(transactions)
	count := len(transactions)

	// The last day of the previous month doubles as its day count.
	lastOfPrevMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	daysInMonth := lastOfPrevMonth.Day()

	avgPerDay := 0.0
	if daysInMonth > 0 {
		avgPerDay = totalSpent / float64(daysInMonth)
	}
	avgPerTransaction := 0.0
	if count > 0 {
		avgPerTransaction = totalSpent / float64(count)
	}

	largest := 0.0
	for _, t := range transactions {
		if amount := t.Amount.Abs().Major(); amount > largest {
			largest = amount
		}
	}

	return models.MonthlyReport{
		MonthName:          lastOfPrevMonth.Format("January 2006"),
		TotalSpent:         totalSpent,
		TransactionCount:   count,
		DaysInMonth:        daysInMonth,
		AvgPerDay:          avgPerDay,
		AvgPerTransaction:  avgPerTransaction,
		LargestTransaction: largest,
		MostActiveDay:      MostActiveDay(transactions),
		CategoriesUsed:     len(spending),
		TopCategories:      RankCategories(spending, totalSpent),
		Recurring:          recurring,
	}
}

// TotalSpent sums the absolute major-unit amounts of the given
// transactions. For a split this reads the parent amount, which can
// diverge from the aggregate-derived sum when a split carries an
// inflow subtransaction; callers compare the two rather than treating
// either as canonical.
func TotalSpent(transactions []models.Transaction) float64 {
	total := 0.0
	for _, t := range transactions {
		total += t.Amount.Abs().Major()
	}
	return total
}

// AggregateTotal sums the per-category totals of an aggregate, the
// cross-check counterpart of TotalSpent.
func AggregateTotal(spending map[string]*models.CategoryAggregate) float64 {
	total := 0.0
	for _, agg := range spending {
		total += agg.Total
	}
	return total
}

// MostActiveDay returns the weekday name with the most transactions,
// or "N/A" for an empty list. Ties break alphabetically by weekday
// name so the result is deterministic.
func MostActiveDay(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "N/A"
	}
	counts := make(map[string]int)
	for _, t := range transactions {
		counts[t.Date.Weekday().String()]++
	}

	best := ""
	for day, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && day < best) {
			best = day
		}
	}
	return best
}

// RankCategories orders aggregate entries by total descending and
// annotates each with its share of totalSpent. Shares are 0 when
// totalSpent is 0. Equal totals order alphabetically.
func RankCategories(spending map[string]*models.CategoryAggregate, totalSpent float64) []models.RankedCategory {
	ranked := make([]models.RankedCategory, 0, len(spending))
	for name, agg := range spending {
		percentage := 0.0
		if totalSpent > 0 {
			percentage = agg.Total / totalSpent * 100
		}
		ranked = append(ranked, models.RankedCategory{
			Name:       name,
			Total:      agg.Total,
			Count:      agg.Count,
			Percentage: percentage,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
