package billing

import (
	"crm-backend/internal/apperrors"
)

// DiscountType is how a discount input is expressed
type DiscountType string

const (
	DiscountNone       DiscountType = ""
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// MaxDiscountPercent caps any discount at this share of the subtotal,
// regardless of whether it was entered flat or as a percentage.
const MaxDiscountPercent = 30.0

// ValidateDiscount converts the discount to an amount and enforces the
// cap. This runs on every quotation write; client-side checks are
// advisory only. A flat discount against a zero subtotal always
// exceeds the cap (the effective ratio is unbounded), so it is
// rejected instead of producing Inf/NaN.
func ValidateDiscount(discountType DiscountType, value, subtotal float64) (float64, error) {
	if discountType == DiscountNone || value <= 0 {
		return 0, nil
	}

	var amount, percent float64
	switch discountType {
	case DiscountPercentage:
		percent = value
		amount = subtotal * value / 100
	case DiscountFlat:
		if subtotal <= 0 {
			return 0, apperrors.Validationf("Discount cannot exceed %.0f%%. A flat discount is not allowed on a zero subtotal", MaxDiscountPercent)
		}
		amount = value
		percent = value / subtotal * 100
	default:
		return 0, apperrors.Validationf("Unknown discount type %q", string(discountType))
	}

	if percent > MaxDiscountPercent {
		return 0, apperrors.Validationf("Discount cannot exceed %.0f%%. Current discount is %.2f%%", MaxDiscountPercent, percent)
	}

	return amount, nil
}
