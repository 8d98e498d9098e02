// Package billing holds the financial rules shared by quotations,
// bills and receipts: the monetary breakdown, the discount cap,
// document numbering and payment reconciliation. Everything here is
// pure; persistence lives in the repositories.
package billing

// DefaultGSTPercent is the default rate for each half of GST (CGST/SGST)
const DefaultGSTPercent = 9.0

// CalcInput is everything needed to derive a monetary breakdown.
// ItemAmounts carries the precomputed quantity x rate of each line;
// when no items exist the subtotal falls back to sqft x rate.
type CalcInput struct {
	TotalSqft     float64
	RatePerSqft   float64
	ItemAmounts   []float64
	DiscountType  DiscountType
	DiscountValue float64
	CGSTPercent   float64 // 0 means default
	SGSTPercent   float64 // 0 means default
}

// Breakdown is the full derived monetary state of a document.
// Invariant: GrandTotal = TaxableAmount + CGSTAmount + SGSTAmount and
// TaxableAmount = Subtotal - DiscountAmount.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxableAmount  float64 `json:"taxable_amount"`
	CGSTPercent    float64 `json:"cgst_percent"`
	CGSTAmount     float64 `json:"cgst_amount"`
	SGSTPercent    float64 `json:"sgst_percent"`
	SGSTAmount     float64 `json:"sgst_amount"`
	TotalTax       float64 `json:"total_tax"`
	GrandTotal     float64 `json:"grand_total"`
}

// Calculate derives the breakdown for the given input. It returns a
// ValidationError when the discount exceeds the cap. Values stay in
// full float64 precision; display rounding is the caller's concern.
func Calculate(in CalcInput) (Breakdown, error) {
	subtotal := 0.0
	if len(in.ItemAmounts) > 0 {
		for _, amount := range in.ItemAmounts {
			subtotal += amount
		}
	} else if in.TotalSqft > 0 && in.RatePerSqft > 0 {
		subtotal = in.TotalSqft * in.RatePerSqft
	}

	discountAmount, err := ValidateDiscount(in.DiscountType, in.DiscountValue, subtotal)
	if err != nil {
		return Breakdown{}, err
	}

	cgst := in.CGSTPercent
	if cgst == 0 {
		cgst = DefaultGSTPercent
	}
	sgst := in.SGSTPercent
	if sgst == 0 {
		sgst = DefaultGSTPercent
	}

	taxable := subtotal - discountAmount
	cgstAmount := taxable * cgst / 100
	sgstAmount := taxable * sgst / 100
	totalTax := cgstAmount + sgstAmount

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		CGSTPercent:    cgst,
		CGSTAmount:     cgstAmount,
		SGSTPercent:    sgst,
		SGSTAmount:     sgstAmount,
		TotalTax:       totalTax,
		GrandTotal:     taxable + totalTax,
	}, nil
}
