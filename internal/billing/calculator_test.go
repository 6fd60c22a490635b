package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSubtotalAndTotal(t *testing.T) {
	tests := []struct {
		name        string
		items       []LineItem
		taxPercent  float64
		wantSub     int64
		wantTax     int64
		wantTotal   int64
		expectError bool
	}{
		{
			name: "two items no tax",
			items: []LineItem{
				{Description: "Consulting", Quantity: 2, UnitPriceCents: 15000},
				{Description: "Hosting", Quantity: 1, UnitPriceCents: 2500},
			},
			taxPercent: 0,
			wantSub:    32500,
			wantTax:    0,
			wantTotal:  32500,
		},
		{
			name: "tax rounds half up",
			items: []LineItem{
				{Description: "Widget", Quantity: 1, UnitPriceCents: 1050},
			},
			taxPercent: 7.5, // 78.75 cents -> 79
			wantSub:    1050,
			wantTax:    79,
			wantTotal:  1129,
		},
		{
			name: "fractional tax rate",
			items: []LineItem{
				{Description: "Service", Quantity: 3, UnitPriceCents: 9999},
			},
			taxPercent: 8.25, // 2474.7525 -> 2475
			wantSub:    29997,
			wantTax:    2475,
			wantTotal:  32472,
		},
		{
			name:       "empty list",
			items:      nil,
			taxPercent: 10,
			wantSub:    0,
			wantTax:    0,
			wantTotal:  0,
		},
		{
			name: "non-positive quantity defaults to 1 and negative price clamps",
			items: []LineItem{
				{Description: "A", Quantity: 0, UnitPriceCents: 500},
				{Description: "B", Quantity: -3, UnitPriceCents: 200},
				{Description: "C", Quantity: 2, UnitPriceCents: -100},
			},
			taxPercent: 0,
			wantSub:    700,
			wantTax:    0,
			wantTotal:  700,
		},
		{
			name:        "tax percent above 100 rejected",
			items:       []LineItem{{Quantity: 1, UnitPriceCents: 100}},
			taxPercent:  101,
			expectError: true,
		},
		{
			name:        "negative tax percent rejected",
			items:       []LineItem{{Quantity: 1, UnitPriceCents: 100}},
			taxPercent:  -1,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Calculate(tt.items, tt.taxPercent)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, totals.SubtotalCents)
			assert.Equal(t, tt.wantTax, totals.TaxCents)
			assert.Equal(t, tt.wantTotal, totals.TotalCents)
			assert.Equal(t, totals.SubtotalCents+totals.TaxCents, totals.TotalCents,
				"total must equal subtotal plus tax")
		})
	}
}

func TestNewRowDefaults(t *testing.T) {
	row := NewRow()
	assert.Equal(t, "", row.Description)
	assert.Equal(t, int64(1), row.Quantity)
	assert.Equal(t, int64(0), row.UnitPriceCents)
}

func TestRemoveRow(t *testing.T) {
	items := []LineItem{
		{Description: "first", Quantity: 1, UnitPriceCents: 100},
		{Description: "second", Quantity: 1, UnitPriceCents: 200},
	}

	out, err := RemoveRow(items, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "second", out[0].Description)

	// Last remaining row must stay.
	_, err = RemoveRow(out, 0)
	require.Error(t, err)

	_, err = RemoveRow(items, 5)
	require.Error(t, err)
}
