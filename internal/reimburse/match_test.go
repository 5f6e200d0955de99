package reimburse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/reimburse/internal/model"
)

func TestResolvePayee(t *testing.T) {
	payees := map[string]string{"p1": "Alice"}
	tests := []struct {
		name   string
		txn    model.Transaction
		want   string
		wantOK bool
	}{
		{"own payee", model.Transaction{ID: "t1", PayeeName: "Bob", ParentID: "p1"}, "Bob", true},
		{"parent payee", model.Transaction{ID: "t2", ParentID: "p1"}, "Alice", true},
		{"unknown parent", model.Transaction{ID: "t3", ParentID: "p9"}, Unresolved, false},
		{"no parent", model.Transaction{ID: "t4"}, Unresolved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolvePayee(tt.txn, payees)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPayeeLookup(t *testing.T) {
	txns := []model.Transaction{
		{ID: "a", PayeeName: "Alice"},
		{ID: "b"},
		{ID: "c", PayeeName: "Carol"},
	}
	assert.Equal(t, map[string]string{"a": "Alice", "c": "Carol"}, PayeeLookup(txns))
}

func TestMatcher_ByName(t *testing.T) {
	txns := []model.Transaction{
		{ID: "1", CategoryName: "💸 Kelsey Repayment", PayeeName: "Diner"},
		{ID: "2", CategoryName: "Rent", PayeeName: "Landlord"},
		{ID: "3", CategoryName: "Kelsey Repayment", ParentID: "p1"},
		{ID: "4"},
	}
	m := Matcher{Name: "Kelsey Repayment"}
	got := m.Match(txns, map[string]string{"p1": "Costco"})

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Transaction.ID)
	assert.Equal(t, "Diner", got[0].Payee)
	assert.Equal(t, "3", got[1].Transaction.ID)
	assert.Equal(t, "Costco", got[1].Payee)
	assert.True(t, got[1].Resolved)
}

func TestMatcher_ByCategoryID(t *testing.T) {
	txns := []model.Transaction{
		{ID: "1", CategoryID: "c1", PayeeName: "A"},
		{ID: "2", CategoryID: "c2", PayeeName: "B"},
		{ID: "3", CategoryName: "c1"},
	}
	m := Matcher{CategoryID: "c1"}
	got := m.Match(txns, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Transaction.ID)
}

func TestMatcher_EmptySelectsNothing(t *testing.T) {
	txns := []model.Transaction{{ID: "1"}, {ID: "2", CategoryID: "c1"}}
	assert.Empty(t, Matcher{}.Match(txns, nil))
}

func TestMatcher_UnresolvedKept(t *testing.T) {
	txns := []model.Transaction{{ID: "1", CategoryName: "Kelsey Repayment"}}
	got := Matcher{Name: "Kelsey Repayment"}.Match(txns, nil)

	require.Len(t, got, 1)
	assert.Equal(t, Unresolved, got[0].Payee)
	assert.False(t, got[0].Resolved)
}
