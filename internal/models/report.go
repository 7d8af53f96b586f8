package models

// CategoryAggregate accumulates the spending counted against one
// category. Total is in major units with the sign flipped, so net
// spending is positive and refunds reduce it. Transactions holds the
// contributing parent transactions; a split parent appears once per
// category its subtransactions touch.
type CategoryAggregate struct {
	Total        float64
	Count        int
	Transactions []Transaction
}

// CategoryStatus is one category's budget-health entry, amounts in
// major units. PercentUsed is meaningful for overspent and warning
// entries.
type CategoryStatus struct {
	Name        string
	Budgeted    float64
	Activity    float64
	Balance     float64
	PercentUsed float64
}

// BudgetStatus groups the current month's categories into the three
// mutually exclusive health classes. A category appears in at most one
// list.
type BudgetStatus struct {
	Overspent   []CategoryStatus
	Warning     []CategoryStatus
	Underfunded []CategoryStatus
}

// RankedCategory is one entry of a monthly top-categories ranking.
type RankedCategory struct {
	Name       string
	Total      float64
	Count      int
	Percentage float64
}

// DailyReport is the rendering contract for the daily alert email.
type DailyReport struct {
	CurrentDate        string
	Uncategorized      []Transaction
	UncategorizedCount int
	Status             BudgetStatus
	Threshold          float64
}

// WeeklyReport is the rendering contract for the weekly recap email.
type WeeklyReport struct {
	WeekStart        string
	WeekEnd          string
	TotalSpent       float64
	TransactionCount int
	Spending         map[string]*CategoryAggregate
	Upcoming         []ScheduledTransaction
	Status           BudgetStatus
}

// MonthlyReport is the rendering contract for the monthly recap email.
type MonthlyReport struct {
	MonthName          string
	TotalSpent         float64
	TransactionCount   int
	DaysInMonth        int
	AvgPerDay          float64
	AvgPerTransaction  float64
	LargestTransaction float64
	MostActiveDay      string
	CategoriesUsed     int
	TopCategories      []RankedCategory
	Recurring          []ScheduledTransaction
}
