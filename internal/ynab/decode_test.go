package ynab

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactions_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/category_transactions.json")
	require.NoError(t, err)

	txns, err := ParseTransactions(data)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	first := txns[0]
	assert.Equal(t, "t-dinner", first.ID)
	assert.Empty(t, first.ParentID)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "-42.5", first.Amount.String())
	assert.Equal(t, "c-kelsey", first.CategoryID)
	assert.Equal(t, "💸 Kelsey Repayment", first.CategoryName)
	assert.Equal(t, "dinner at Lucia's", first.Memo)
	assert.Equal(t, "Lucia's Trattoria", first.PayeeName)

	// Null memo maps to empty.
	assert.Empty(t, txns[1].Memo)

	// Split child keeps its parent and has no payee.
	child := txns[2]
	assert.Equal(t, "t-costco", child.ParentID)
	assert.True(t, child.IsSplitChild())
	assert.False(t, child.HasPayee())
}

func TestParseTransactions_PreservesOrder(t *testing.T) {
	data, err := os.ReadFile("../../testdata/all_transactions.json")
	require.NoError(t, err)

	txns, err := ParseTransactions(data)
	require.NoError(t, err)

	var ids []string
	for _, txn := range txns {
		ids = append(ids, txn.ID)
	}
	assert.Equal(t, []string{"t-dinner", "t-costco", "t-orphan"}, ids)
}

func TestMilliunitsToDollars(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{12345, "12.345"},
		{-42500, "-42.5"},
		{1000, "1"},
		{1, "0.001"},
		{0, "0"},
	}
	for _, tt := range tests {
		got := MilliunitsToDollars(tt.in)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "MilliunitsToDollars(%d) = %s", tt.in, got)
	}
}

func TestParseTransactions_ExactAmount(t *testing.T) {
	data := []byte(`{"data":{"transactions":[{"id":"a","date":"2025-01-01","amount":12345}]}}`)

	txns, err := ParseTransactions(data)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, decimal.RequireFromString("12.345").Equal(txns[0].Amount))
	assert.Equal(t, "12.345", txns[0].Amount.String())
}

func TestParseTransactions_MissingOptionalFields(t *testing.T) {
	data := []byte(`{"data":{"transactions":[{"id":"a","date":"2025-01-01","amount":-500}]}}`)

	txns, err := ParseTransactions(data)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Empty(t, txn.ParentID)
	assert.Empty(t, txn.CategoryID)
	assert.Empty(t, txn.CategoryName)
	assert.Empty(t, txn.Memo)
	assert.Empty(t, txn.PayeeName)
}

func TestParseTransactions_EmptyList(t *testing.T) {
	txns, err := ParseTransactions([]byte(`{"data":{"transactions":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParseTransactions_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIndex int
		wantField string
	}{
		{"malformed json", `{"data":`, -1, ""},
		{"no data", `{}`, -1, "data.transactions"},
		{"no transactions", `{"data":{}}`, -1, "data.transactions"},
		{"missing id", `{"data":{"transactions":[{"date":"2025-01-01","amount":1}]}}`, 0, "id"},
		{"missing date", `{"data":{"transactions":[{"id":"a","amount":1},{"id":"b"}]}}`, 0, "date"},
		{"missing amount", `{"data":{"transactions":[{"id":"a","date":"2025-01-01","amount":1},{"id":"b","date":"2025-01-01"}]}}`, 1, "amount"},
		{"bad date", `{"data":{"transactions":[{"id":"a","date":"01/03/2025","amount":1}]}}`, 0, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransactions([]byte(tt.body))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantIndex, perr.Index)
			assert.Equal(t, tt.wantField, perr.Field)
		})
	}
}

func TestParseCategories_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/categories.json")
	require.NoError(t, err)

	groups, err := ParseCategories(data)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Bills", groups[0].Name)
	require.Len(t, groups[1].Categories, 2)
	assert.Equal(t, "c-kelsey", groups[1].Categories[1].ID)
	assert.Equal(t, "💸 Kelsey Repayment", groups[1].Categories[1].Name)
}

func TestParseCategories_Malformed(t *testing.T) {
	_, err := ParseCategories([]byte(`{"data":{}}`))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "data.category_groups", perr.Field)
}
