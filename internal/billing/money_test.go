package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency string
		want     string
	}{
		{"dollars with grouping", 123456, "USD", "$1,234.56"},
		{"small amount", 5, "USD", "$0.05"},
		{"exact dollar", 100, "USD", "$1.00"},
		{"millions", 123456789, "USD", "$1,234,567.89"},
		{"negative", -2500, "USD", "-$25.00"},
		{"euro", 999, "EUR", "€9.99"},
		{"unknown code falls back to prefix", 1500, "SEK", "SEK 15.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cents, tt.currency))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in        string
		want      int64
		expectErr bool
	}{
		{in: "1234.56", want: 123456},
		{in: "1,234.56", want: 123456},
		{in: "$12", want: 1200},
		{in: "0.5", want: 50},
		{in: ".99", want: 99},
		{in: "-5", expectErr: true},
		{in: "", expectErr: true},
		{in: "12.345", expectErr: true},
		{in: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
