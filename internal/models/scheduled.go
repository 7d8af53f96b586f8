package models

// FrequencyNever is the YNAB frequency token for a one-off scheduled
// transaction.
const FrequencyNever = "never"

// ScheduledTransaction represents a recurring or upcoming scheduled
// transaction from YNAB.
type ScheduledTransaction struct {
	ID           string     `json:"id"`
	DateNext     Date       `json:"date_next"`
	Frequency    string     `json:"frequency"`
	Amount       Milliunits `json:"amount"`
	PayeeName    *string    `json:"payee_name"`
	CategoryName *string    `json:"category_name"`
}

// IsRecurring reports whether the scheduled transaction repeats.
func (s ScheduledTransaction) IsRecurring() bool {
	return s.Frequency != "" && s.Frequency != FrequencyNever
}
