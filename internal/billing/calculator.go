package billing

import (
	"fmt"
	"math"
)

// LineItem is one billable row as edited in an invoice form. Quantity and
// unit price are normalized (not rejected) so a half-typed form still
// produces a usable running total.
type LineItem struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Totals holds the derived invoice figures, all integer minor units.
// Invariant: TotalCents == SubtotalCents + TaxCents.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// NewRow returns the default row appended when the user adds a line item.
func NewRow() LineItem {
	return LineItem{Description: "", Quantity: 1, UnitPriceCents: 0}
}

// Normalize applies the form defaults: non-positive quantity becomes 1,
// negative unit price clamps to zero.
func (li LineItem) Normalize() LineItem {
	if li.Quantity <= 0 {
		li.Quantity = 1
	}
	if li.UnitPriceCents < 0 {
		li.UnitPriceCents = 0
	}
	return li
}

// TotalCents returns quantity x unit price after normalization.
func (li LineItem) TotalCents() int64 {
	n := li.Normalize()
	return n.Quantity * n.UnitPriceCents
}

// ValidateTaxPercent checks the tax rate is within [0,100]. Fractional
// rates are fine.
func ValidateTaxPercent(taxPercent float64) error {
	if math.IsNaN(taxPercent) || taxPercent < 0 || taxPercent > 100 {
		return fmt.Errorf("tax percent must be between 0 and 100, got %v", taxPercent)
	}
	return nil
}

// Calculate derives subtotal, tax and grand total from the item list. The
// row count is small so it recomputes from scratch every call; there is no
// caching or incremental update. Tax is rounded half-up on the subtotal,
// never per row.
func Calculate(items []LineItem, taxPercent float64) (Totals, error) {
	if err := ValidateTaxPercent(taxPercent); err != nil {
		return Totals{}, err
	}

	var subtotal int64
	for _, li := range items {
		subtotal += li.TotalCents()
	}

	tax := int64(math.Floor(float64(subtotal)*taxPercent/100 + 0.5))

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}, nil
}

// RemoveRow deletes the row at index i. The form always keeps at least one
// row, so removing the last remaining row is refused.
func RemoveRow(items []LineItem, i int) ([]LineItem, error) {
	if i < 0 || i >= len(items) {
		return items, fmt.Errorf("row index %d out of range", i)
	}
	if len(items) == 1 {
		return items, fmt.Errorf("cannot remove the last remaining row")
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out, nil
}
