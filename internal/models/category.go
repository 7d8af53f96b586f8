package models

// CategorySnapshot is a category's budget state for one month as
// returned by the YNAB month endpoint. Amounts are milliunits;
// activity is negative for net spending and balance may be negative
// when the category is overspent.
type CategorySnapshot struct {
	ID       string     `json:"id"`
	Name     *string    `json:"name"`
	Budgeted Milliunits `json:"budgeted"`
	Activity Milliunits `json:"activity"`
	Balance  Milliunits `json:"balance"`
}
