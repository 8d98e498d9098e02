package billing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/apperrors"
)

func TestValidateDiscountPercentageWithinCap(t *testing.T) {
	subtotal := 200000.0
	for _, pct := range []float64{0.5, 1, 10, 15, 29.99, 30} {
		amount, err := ValidateDiscount(DiscountPercentage, pct, subtotal)
		require.NoError(t, err, "percentage %v", pct)
		assert.InDelta(t, subtotal*pct/100, amount, 1e-9)
	}
}

func TestValidateDiscountPercentageOverCap(t *testing.T) {
	for _, pct := range []float64{30.01, 35, 50, 100} {
		_, err := ValidateDiscount(DiscountPercentage, pct, 200000)
		require.Error(t, err, "percentage %v", pct)

		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
}

func TestValidateDiscountFlat(t *testing.T) {
	subtotal := 1500000.0

	// 30% of 1,500,000 is 450,000 - the boundary
	amount, err := ValidateDiscount(DiscountFlat, 450000, subtotal)
	require.NoError(t, err)
	assert.Equal(t, 450000.0, amount)

	_, err = ValidateDiscount(DiscountFlat, 450001, subtotal)
	assert.Error(t, err)

	_, err = ValidateDiscount(DiscountFlat, 500000, subtotal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "33.33")
}

func TestValidateDiscountZeroOrAbsent(t *testing.T) {
	cases := []struct {
		discountType DiscountType
		value        float64
	}{
		{DiscountNone, 0},
		{DiscountNone, 500},
		{DiscountPercentage, 0},
		{DiscountFlat, 0},
		{DiscountFlat, -100},
	}
	for _, c := range cases {
		amount, err := ValidateDiscount(c.discountType, c.value, 100000)
		require.NoError(t, err, fmt.Sprintf("%s/%v", c.discountType, c.value))
		assert.Equal(t, 0.0, amount)
	}
}

func TestValidateDiscountFlatOnZeroSubtotal(t *testing.T) {
	// A flat discount with no subtotal has an unbounded effective ratio;
	// it must be rejected rather than producing Inf or NaN
	_, err := ValidateDiscount(DiscountFlat, 1000, 0)
	require.Error(t, err)

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NotContains(t, err.Error(), "Inf")
	assert.NotContains(t, err.Error(), "NaN")
}

func TestValidateDiscountUnknownType(t *testing.T) {
	_, err := ValidateDiscount(DiscountType("coupon"), 10, 100000)
	assert.Error(t, err)
}
