// Package classify decides which raw transactions count toward
// spending. YNAB marks transfers, reconciliation adjustments and
// unassigned income with naming conventions rather than flags, so the
// rules here are substring matches that every report shares.
package classify

import (
	"strings"

	"github.com/budgetbot/ynab-reporter/internal/models"
)

// ExclusionReason says why a transaction is excluded from spending
// aggregates, or None when it counts.
type ExclusionReason int

const (
	None ExclusionReason = iota
	Transfer
	Reconciliation
	Inflow
)

func (r ExclusionReason) String() string {
	switch r {
	case Transfer:
		return "transfer"
	case Reconciliation:
		return "reconciliation"
	case Inflow:
		return "inflow"
	default:
		return "none"
	}
}

// UncategorizedName is the category name YNAB shows for transactions
// without an assigned category.
const UncategorizedName = "Uncategorized"

// IsTransfer reports whether the transaction moves funds between two
// tracked accounts. Transfers are balance-neutral and never count as
// spending.
func IsTransfer(t models.Transaction) bool {
	return t.TransferAccountID != nil && *t.TransferAccountID != ""
}

// IsReconciliation reports whether the payee name marks a
// system-generated balance correction.
func IsReconciliation(t models.Transaction) bool {
	payee := strings.ToLower(deref(t.PayeeName))
	return strings.Contains(payee, "reconciliation") || strings.Contains(payee, "balance adjustment")
}

// IsInflow reports whether a category name denotes unassigned income.
// The YNAB reserved category is "Inflow: Ready to Assign"; matching is
// case-insensitive on either token.
func IsInflow(categoryName string) bool {
	name := strings.ToLower(categoryName)
	return strings.Contains(name, "inflow") || strings.Contains(name, "ready to assign")
}

// Classify returns the first reason the transaction is excluded from
// spending aggregates, checking transfer, then reconciliation, then
// the transaction's own category. For splits the per-subtransaction
// inflow check happens during aggregation, not here.
func Classify(t models.Transaction) ExclusionReason {
	if IsTransfer(t) {
		return Transfer
	}
	if IsReconciliation(t) {
		return Reconciliation
	}
	if IsInflow(deref(t.CategoryName)) {
		return Inflow
	}
	return None
}

// Countable reports whether the transaction counts toward spending.
func Countable(t models.Transaction) bool {
	return Classify(t) == None
}

// CategoryName resolves a possibly-absent category name, defaulting to
// UncategorizedName.
func CategoryName(name *string) string {
	if name == nil || *name == "" {
		return UncategorizedName
	}
	return *name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
