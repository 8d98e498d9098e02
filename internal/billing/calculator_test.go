package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSqftBased(t *testing.T) {
	// 1000 sqft x 1500/sqft with 10% discount and 9+9 GST
	breakdown, err := Calculate(CalcInput{
		TotalSqft:     1000,
		RatePerSqft:   1500,
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		CGSTPercent:   9,
		SGSTPercent:   9,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, breakdown.Subtotal)
	assert.Equal(t, 150000.0, breakdown.DiscountAmount)
	assert.Equal(t, 1350000.0, breakdown.TaxableAmount)
	assert.Equal(t, 121500.0, breakdown.CGSTAmount)
	assert.Equal(t, 121500.0, breakdown.SGSTAmount)
	assert.Equal(t, 243000.0, breakdown.TotalTax)
	assert.Equal(t, 1593000.0, breakdown.GrandTotal)
}

func TestCalculateItemsOverrideSqft(t *testing.T) {
	// Items drive the subtotal even when sqft and rate are present
	breakdown, err := Calculate(CalcInput{
		TotalSqft:   1000,
		RatePerSqft: 1500,
		ItemAmounts: []float64{25000, 15000, 10000},
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.DiscountAmount)
	assert.Equal(t, 50000.0, breakdown.TaxableAmount)
}

func TestCalculateDefaultGST(t *testing.T) {
	breakdown, err := Calculate(CalcInput{ItemAmounts: []float64{100000}})
	require.NoError(t, err)

	assert.Equal(t, 9.0, breakdown.CGSTPercent)
	assert.Equal(t, 9.0, breakdown.SGSTPercent)
	assert.Equal(t, 9000.0, breakdown.CGSTAmount)
	assert.Equal(t, 9000.0, breakdown.SGSTAmount)
	assert.Equal(t, 118000.0, breakdown.GrandTotal)
}

func TestCalculateFlatDiscount(t *testing.T) {
	breakdown, err := Calculate(CalcInput{
		ItemAmounts:   []float64{200000},
		DiscountType:  DiscountFlat,
		DiscountValue: 50000,
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, breakdown.DiscountAmount)
	assert.Equal(t, 150000.0, breakdown.TaxableAmount)
}

func TestCalculateRejectsExcessiveDiscount(t *testing.T) {
	// 500,000 flat on a 1,500,000 subtotal is 33.3%, over the 30% cap
	_, err := Calculate(CalcInput{
		TotalSqft:     1000,
		RatePerSqft:   1500,
		DiscountType:  DiscountFlat,
		DiscountValue: 500000,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Discount cannot exceed 30%")
}

func TestCalculateEmptyInput(t *testing.T) {
	breakdown, err := Calculate(CalcInput{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.GrandTotal)
}

func TestBreakdownIdentities(t *testing.T) {
	// grand_total == taxable + cgst + sgst and taxable == subtotal - discount
	// must hold for every computed breakdown
	inputs := []CalcInput{
		{TotalSqft: 1000, RatePerSqft: 1500, DiscountType: DiscountPercentage, DiscountValue: 10},
		{ItemAmounts: []float64{1234.56, 789.01, 55555.5}},
		{ItemAmounts: []float64{99999}, DiscountType: DiscountFlat, DiscountValue: 12345, CGSTPercent: 6, SGSTPercent: 6},
		{TotalSqft: 350.5, RatePerSqft: 1875.25, DiscountType: DiscountPercentage, DiscountValue: 30},
	}

	for _, in := range inputs {
		breakdown, err := Calculate(in)
		require.NoError(t, err)
		assert.InDelta(t, breakdown.Subtotal-breakdown.DiscountAmount, breakdown.TaxableAmount, 1e-9)
		assert.InDelta(t, breakdown.TaxableAmount+breakdown.CGSTAmount+breakdown.SGSTAmount, breakdown.GrandTotal, 1e-9)
		assert.InDelta(t, breakdown.CGSTAmount+breakdown.SGSTAmount, breakdown.TotalTax, 1e-9)
	}
}
