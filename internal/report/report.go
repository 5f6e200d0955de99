// Package report renders a reimbursement run for the terminal or a spreadsheet.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reimburse/internal/reimburse"
)

// Header is the CSV header written by CSV.
const Header = "date,amount,payee,memo,transaction_id,parent_transaction_id"

const (
	numFields   = 6
	colDate     = 0
	colAmount   = 1
	colPayee    = 2
	colMemo     = 3
	colID       = 4
	colParentID = 5
)

// FormatDollars prints an amount with at least two decimals and no loss of
// milliunit precision: 5 -> "5.00", 12.345 -> "12.345".
func FormatDollars(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// Line formats one matched transaction.
func Line(m reimburse.Match) string {
	return fmt.Sprintf("Date: %s, Amount: $%s, Payee: %s",
		m.Transaction.Date.Format(time.DateOnly), FormatDollars(m.Transaction.Amount), m.Payee)
}

// Text writes the payee lookup dump, the transaction count, one line per
// match and the per-payee totals.
func Text(w io.Writer, res *reimburse.Result) error {
	ids := lo.Keys(res.Payees)
	slices.Sort(ids)

	if _, err := fmt.Fprintf(w, "Payee lookup (%d):\n", len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", id, res.Payees[id]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%d transactions found\n", len(res.Transactions)); err != nil {
		return err
	}
	for _, m := range res.Matches {
		if _, err := fmt.Fprintln(w, Line(m)); err != nil {
			return err
		}
	}

	if len(res.Matches) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nTotals by payee:"); err != nil {
		return err
	}
	for _, t := range Totals(res.Matches) {
		if _, err := fmt.Fprintf(w, "  %s: $%s (%d)\n", t.Payee, FormatDollars(t.Amount), t.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: $%s\n", FormatDollars(Sum(res.Matches)))
	return err
}

// CSV writes one row per match, with a header.
func CSV(w io.Writer, res *reimburse.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range res.Matches {
		if err := cw.Write(MarshalMatch(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMatch converts a Match to a CSV row.
func MarshalMatch(m reimburse.Match) []string {
	row := make([]string, numFields)
	row[colDate] = m.Transaction.Date.Format(time.DateOnly)
	row[colAmount] = FormatDollars(m.Transaction.Amount)
	row[colPayee] = m.Payee
	row[colMemo] = m.Transaction.Memo
	row[colID] = m.Transaction.ID
	row[colParentID] = m.Transaction.ParentID
	return row
}

// PayeeTotal is the sum owed for one payee.
type PayeeTotal struct {
	Payee  string
	Amount decimal.Decimal
	Count  int
}

// Totals sums matches per payee, in order of first appearance.
func Totals(matches []reimburse.Match) []PayeeTotal {
	var totals []PayeeTotal
	index := make(map[string]int)
	for _, m := range matches {
		i, ok := index[m.Payee]
		if !ok {
			i = len(totals)
			index[m.Payee] = i
			totals = append(totals, PayeeTotal{Payee: m.Payee})
		}
		totals[i].Amount = totals[i].Amount.Add(m.Transaction.Amount)
		totals[i].Count++
	}
	return totals
}

// Sum returns the total amount across matches.
func Sum(matches []reimburse.Match) decimal.Decimal {
	total := decimal.Zero
	for _, m := range matches {
		total = total.Add(m.Transaction.Amount)
	}
	return total
}
