package models

// Transaction represents a single YNAB transaction. Optional fields are
// pointers because the API returns explicit nulls for them.
type Transaction struct {
	ID                     string           `json:"id"`
	Date                   Date             `json:"date"`
	Amount                 Milliunits       `json:"amount"`
	PayeeName              *string          `json:"payee_name"`
	CategoryID             *string          `json:"category_id"`
	CategoryName           *string          `json:"category_name"`
	TransferAccountID      *string          `json:"transfer_account_id"`
	ScheduledTransactionID *string          `json:"scheduled_transaction_id"`
	Subtransactions        []Subtransaction `json:"subtransactions"`
}

// Subtransaction is one leg of a split transaction. A transaction with
// at least one subtransaction is a split; its own category and amount
// must be ignored in favor of the subtransactions.
type Subtransaction struct {
	ID           string     `json:"id"`
	Amount       Milliunits `json:"amount"`
	CategoryID   *string    `json:"category_id"`
	CategoryName *string    `json:"category_name"`
}

// IsSplit reports whether the transaction carries subtransactions.
func (t Transaction) IsSplit() bool {
	return len(t.Subtransactions) > 0
}
