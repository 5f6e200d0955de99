package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one budget transaction as returned by the YNAB API.
// Optional fields are empty when the API omits them or sends null.
type Transaction struct {
	ID           string
	ParentID     string // set on split children only
	Date         time.Time
	Amount       decimal.Decimal // dollars; negative = outflow
	CategoryID   string
	CategoryName string
	Memo         string
	PayeeName    string
}

// IsSplitChild reports whether the transaction is part of a split.
func (t Transaction) IsSplitChild() bool {
	return t.ParentID != ""
}

// HasPayee reports whether the API supplied a payee name.
func (t Transaction) HasPayee() bool {
	return t.PayeeName != ""
}
