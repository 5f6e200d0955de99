package ynab

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/reimburse/internal/model"
)

// DateLayout is the API's date format, used for both fields and since_date.
const DateLayout = "2006-01-02"

// milliunitExp scales API amounts to dollars: 1000 milliunits = $1.00.
const milliunitExp = -3

var errMissing = errors.New("missing required field")

type rawTransaction struct {
	ID                  *string `json:"id"`
	ParentTransactionID *string `json:"parent_transaction_id"`
	Date                *string `json:"date"`
	Amount              *int64  `json:"amount"`
	CategoryID          *string `json:"category_id"`
	CategoryName        *string `json:"category_name"`
	Memo                *string `json:"memo"`
	PayeeName           *string `json:"payee_name"`
}

type transactionsEnvelope struct {
	Data *struct {
		Transactions []rawTransaction `json:"transactions"`
	} `json:"data"`
}

type rawCategory struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hidden  bool   `json:"hidden"`
	Deleted bool   `json:"deleted"`
}

type categoriesEnvelope struct {
	Data *struct {
		CategoryGroups []struct {
			rawCategory
			Categories []rawCategory `json:"categories"`
		} `json:"category_groups"`
	} `json:"data"`
}

// ParseTransactions maps a transactions response body into records, in
// response order. Records without a payee are kept; see
// model.Transaction.HasPayee.
func ParseTransactions(data []byte) ([]model.Transaction, error) {
	var env transactionsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Index: -1, Err: err}
	}
	if env.Data == nil || env.Data.Transactions == nil {
		return nil, &ParseError{Index: -1, Field: "data.transactions", Err: errMissing}
	}

	txns := make([]model.Transaction, 0, len(env.Data.Transactions))
	for i, raw := range env.Data.Transactions {
		txn, err := mapTransaction(raw)
		if err != nil {
			err.Index = i
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func mapTransaction(raw rawTransaction) (model.Transaction, *ParseError) {
	if raw.ID == nil || *raw.ID == "" {
		return model.Transaction{}, &ParseError{Field: "id", Err: errMissing}
	}
	if raw.Date == nil {
		return model.Transaction{}, &ParseError{Field: "date", Err: errMissing}
	}
	if raw.Amount == nil {
		return model.Transaction{}, &ParseError{Field: "amount", Err: errMissing}
	}

	date, err := time.Parse(DateLayout, *raw.Date)
	if err != nil {
		return model.Transaction{}, &ParseError{Field: "date", Err: fmt.Errorf("parsing date %q: %w", *raw.Date, err)}
	}

	return model.Transaction{
		ID:           *raw.ID,
		ParentID:     deref(raw.ParentTransactionID),
		Date:         date,
		Amount:       MilliunitsToDollars(*raw.Amount),
		CategoryID:   deref(raw.CategoryID),
		CategoryName: deref(raw.CategoryName),
		Memo:         deref(raw.Memo),
		PayeeName:    deref(raw.PayeeName),
	}, nil
}

// MilliunitsToDollars converts an API amount exactly, e.g. 12345 -> 12.345.
func MilliunitsToDollars(milliunits int64) decimal.Decimal {
	return decimal.New(milliunits, milliunitExp)
}

// ParseCategories maps a categories response body into category groups.
func ParseCategories(data []byte) ([]model.CategoryGroup, error) {
	var env categoriesEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Index: -1, Err: err}
	}
	if env.Data == nil || env.Data.CategoryGroups == nil {
		return nil, &ParseError{Index: -1, Field: "data.category_groups", Err: errMissing}
	}

	groups := make([]model.CategoryGroup, 0, len(env.Data.CategoryGroups))
	for _, g := range env.Data.CategoryGroups {
		group := model.CategoryGroup{
			ID:      g.ID,
			Name:    g.Name,
			Hidden:  g.Hidden,
			Deleted: g.Deleted,
		}
		for _, c := range g.Categories {
			group.Categories = append(group.Categories, model.Category{
				ID:      c.ID,
				Name:    c.Name,
				Hidden:  c.Hidden,
				Deleted: c.Deleted,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
