package models

// Account represents a YNAB account.
type Account struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	Balance Milliunits `json:"balance"`
	Closed  bool       `json:"closed"`
	Deleted bool       `json:"deleted"`
}
