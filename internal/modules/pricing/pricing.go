// Package pricing computes booking amounts. All functions are pure; amounts
// are integer currency units.
package pricing

import "math"

// DefaultTaxRate is applied when the hosting application does not override it.
const DefaultTaxRate = 0.12

type Quote struct {
	UnitPrice   int64 `json:"unit_price"`
	Subtotal    int64 `json:"subtotal"`
	Taxes       int64 `json:"taxes"`
	Discount    int64 `json:"discount"`
	FinalAmount int64 `json:"final_amount"`
}

// Calculate prices a stay: subtotal = unitPrice * unitCount * nightCount,
// taxes rounded half-up, final = subtotal + taxes - discount.
func Calculate(unitPrice int64, unitCount, nightCount int, taxRate float64, discount int64) Quote {
	subtotal := unitPrice * int64(unitCount) * int64(nightCount)
	taxes := int64(math.Round(float64(subtotal) * taxRate))
	return Quote{
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
		Taxes:       taxes,
		Discount:    discount,
		FinalAmount: subtotal + taxes - discount,
	}
}
