package reimburse

import (
	"strings"

	"github.com/samber/lo"

	"github.com/cleared-dev/reimburse/internal/model"
)

// Unresolved is reported as the payee when neither a transaction nor its
// split parent carries a payee name.
const Unresolved = "<unresolved>"

// Match is one transaction selected for follow-up.
type Match struct {
	Transaction model.Transaction
	Payee       string
	Resolved    bool
}

// Matcher selects reimbursable transactions. With Name set, a transaction
// matches when its category name contains Name; otherwise it matches when
// its category ID equals CategoryID.
type Matcher struct {
	Name       string
	CategoryID string
}

// Selects reports whether txn belongs to the reimbursement category.
func (m Matcher) Selects(txn model.Transaction) bool {
	if m.Name != "" {
		return strings.Contains(txn.CategoryName, m.Name)
	}
	return m.CategoryID != "" && txn.CategoryID == m.CategoryID
}

// Match filters txns and resolves each payee, preserving input order.
// payees maps transaction ID to payee name, see PayeeLookup.
func (m Matcher) Match(txns []model.Transaction, payees map[string]string) []Match {
	selected := lo.Filter(txns, func(txn model.Transaction, _ int) bool {
		return m.Selects(txn)
	})
	return lo.Map(selected, func(txn model.Transaction, _ int) Match {
		payee, ok := ResolvePayee(txn, payees)
		return Match{Transaction: txn, Payee: payee, Resolved: ok}
	})
}

// ResolvePayee returns the transaction's own payee, else its parent's
// payee from the lookup, else Unresolved with ok=false.
func ResolvePayee(txn model.Transaction, payees map[string]string) (payee string, ok bool) {
	if txn.HasPayee() {
		return txn.PayeeName, true
	}
	if txn.IsSplitChild() {
		if name, found := payees[txn.ParentID]; found && name != "" {
			return name, true
		}
	}
	return Unresolved, false
}

// PayeeLookup maps transaction ID to payee name for every transaction
// that has one.
func PayeeLookup(txns []model.Transaction) map[string]string {
	payees := make(map[string]string, len(txns))
	for _, txn := range txns {
		if txn.HasPayee() {
			payees[txn.ID] = txn.PayeeName
		}
	}
	return payees
}
