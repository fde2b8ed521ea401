package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFinalUnitPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"10% off", "10.00", "0.10", "9.00"},
		{"no discount", "7.49", "0", "7.49"},
		{"free", "12.00", "1", "0.00"},
		{"half up", "0.99", "0.5", "0.50"},
		{"rounds down", "3.33", "0.333", "2.22"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FinalUnitPrice(d(tc.price), d(tc.discount))
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

// 丸め済みの値をもう一度通しても変わらない
func TestFinalUnitPrice_Idempotent(t *testing.T) {
	prices := []string{"0.01", "0.99", "9.99", "10.005", "123.456", "1999.995"}
	discounts := []string{"0", "0.05", "0.125", "0.333", "0.5", "1"}

	for _, p := range prices {
		for _, disc := range discounts {
			once := FinalUnitPrice(d(p), d(disc))
			twice := FinalUnitPrice(once, decimal.Zero)
			assert.True(t, once.Equal(twice), "price=%s discount=%s once=%s twice=%s", p, disc, once, twice)
		}
	}
}

func TestLineSubtotal_NoReRounding(t *testing.T) {
	unit := FinalUnitPrice(d("3.33"), d("0.333"))
	assert.Equal(t, "6.66", LineSubtotal(unit, 3).StringFixed(2))
	assert.True(t, LineSubtotal(unit, 3).Equal(unit.Mul(decimal.NewFromInt(3))))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Line{
		{Price: d("10.00"), Discount: d("0.10"), Quantity: 2},
		{Price: d("5.50"), Discount: d("0"), Quantity: 1},
	})

	assert.Equal(t, int64(3), s.TotalItems)
	assert.Equal(t, 2, s.UniqueItems)
	assert.Equal(t, "25.50", s.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", s.TotalDiscount.StringFixed(2))
	assert.Equal(t, "23.50", s.Total.StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, int64(0), s.TotalItems)
	assert.Equal(t, 0, s.UniqueItems)
	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.TotalDiscount.IsZero())
	assert.True(t, s.Total.IsZero())
}

// total は丸め済み subtotal - totalDiscount と完全一致する
func TestSummarize_Additivity(t *testing.T) {
	sets := [][]Line{
		{{Price: d("1.005"), Discount: d("0.004"), Quantity: 1}},
		{{Price: d("0.015"), Discount: d("0.333"), Quantity: 7}, {Price: d("19.99"), Discount: d("0.15"), Quantity: 3}},
		{{Price: d("4.445"), Discount: d("0.5"), Quantity: 1}, {Price: d("0.01"), Discount: d("1"), Quantity: 9}},
		{{Price: d("1999.99"), Discount: d("0.0725"), Quantity: 11}},
	}

	for i, lines := range sets {
		s := Summarize(lines)
		assert.True(t, s.Total.Equal(s.Subtotal.Sub(s.TotalDiscount)), "set %d: %s != %s - %s", i, s.Total, s.Subtotal, s.TotalDiscount)
		assert.True(t, s.Subtotal.Equal(Round2(s.Subtotal)), "set %d subtotal not 2dp", i)
		assert.True(t, s.TotalDiscount.Equal(Round2(s.TotalDiscount)), "set %d discount not 2dp", i)
	}
}

func TestOrderTotal(t *testing.T) {
	total := OrderTotal([]Line{
		{Price: d("10.00"), Discount: d("0.10"), Quantity: 5},
	})
	assert.Equal(t, "45.00", total.StringFixed(2))

	total = OrderTotal([]Line{
		{Price: d("3.33"), Discount: d("0.333"), Quantity: 3},
		{Price: d("0.99"), Discount: d("0.5"), Quantity: 1},
	})
	// 2.22*3 + 0.50
	assert.Equal(t, "7.16", total.StringFixed(2))
}
