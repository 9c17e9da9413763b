package domain_test

import (
	"testing"

	"github.com/mandibooks/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberPrefix(t *testing.T) {
	testCases := []struct {
		txnType domain.TransactionType
		prefix  string
	}{
		{domain.Purchase, "PUR-"},
		{domain.Sale, "SALE-"},
		{domain.PaymentIn, "PAY-IN-"},
		{domain.PaymentOut, "PAY-OUT-"},
		{domain.TransactionType("bogus"), ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.prefix, tc.txnType.NumberPrefix(), "type %s", tc.txnType)
	}
}

func TestBagsFromKg(t *testing.T) {
	testCases := []struct {
		kg   string
		bags string
	}{
		{"300", "10"},
		{"150", "5"},
		{"30", "1"},
		{"45", "1.5"},
		{"0", "0"},
	}

	for _, tc := range testCases {
		got := domain.BagsFromKg(decimal.RequireFromString(tc.kg))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.bags)), "%s kg: got %s bags", tc.kg, got)
	}
}

func TestStockDirection(t *testing.T) {
	assert.Equal(t, domain.StockIncrease, domain.Purchase.StockDirection())
	assert.Equal(t, domain.StockDecrease, domain.Sale.StockDirection())
}

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusCompleted, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusCompleted, domain.StatusCancelled, true},
		{domain.StatusCancelled, domain.StatusCompleted, true},
		{domain.StatusCompleted, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCompleted, domain.StatusCompleted, false},
		{domain.StatusPending, domain.StatusPending, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, domain.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRecomputeTotal(t *testing.T) {
	txn := domain.Transaction{
		Type: domain.Purchase,
		Items: []domain.LineItem{
			{ItemID: "a", Quantity: decimal.NewFromInt(300), Price: decimal.NewFromInt(2)},
			{ItemID: "b", Quantity: decimal.NewFromInt(150), Price: decimal.NewFromInt(4)},
		},
	}
	txn.RecomputeTotal()
	assert.True(t, txn.TotalAmount.Equal(decimal.NewFromInt(1200)), "got %s", txn.TotalAmount)

	payment := domain.Transaction{
		Type:   domain.PaymentIn,
		Amount: decimal.NewFromInt(500),
	}
	payment.RecomputeTotal()
	assert.True(t, payment.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func TestSumQuantities(t *testing.T) {
	items := []domain.LineItem{
		{ItemID: "a", Quantity: decimal.NewFromInt(300)},
		{ItemID: "b", Quantity: decimal.NewFromInt(45)},
	}
	assert.True(t, domain.SumQuantities(items).Equal(decimal.NewFromInt(345)))
	assert.True(t, domain.SumQuantities(nil).IsZero())
}

func TestLineItemsEqual(t *testing.T) {
	a := []domain.LineItem{{ItemID: "x", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(3)}}
	b := []domain.LineItem{{ItemID: "x", Quantity: decimal.NewFromFloat(10.0), Price: decimal.NewFromInt(3)}}
	c := []domain.LineItem{{ItemID: "x", Quantity: decimal.NewFromInt(11), Price: decimal.NewFromInt(3)}}
	d := []domain.LineItem{{ItemID: "y", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(3)}}

	assert.True(t, domain.LineItemsEqual(a, b))
	assert.False(t, domain.LineItemsEqual(a, c))
	assert.False(t, domain.LineItemsEqual(a, d))
	assert.False(t, domain.LineItemsEqual(a, nil))
	assert.True(t, domain.LineItemsEqual(nil, nil))
}
