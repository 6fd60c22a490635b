package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full card number", "4242424242424242", "4242 4242 4242 4242"},
		{"strips non-digits", "4242-4242 4242.4242", "4242 4242 4242 4242"},
		{"truncates past 16 digits", "42424242424242429999", "4242 4242 4242 4242"},
		{"partial input", "42424", "4242 4"},
		{"empty", "", ""},
		{"letters only", "abcd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"four digits", "1225", "12/25"},
		{"already slashed", "12/25", "12/25"},
		{"two digits stay bare", "12", "12"},
		{"three digits", "123", "12/3"},
		{"caps at four digits", "122534", "12/25"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExpiry(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	valid := Input{
		Number:         "4242 4242 4242 4242",
		Expiry:         "12/27",
		CVC:            "123",
		CardholderName: "Jane Doe",
	}

	t.Run("valid input has no messages", func(t *testing.T) {
		assert.Empty(t, Validate(valid, now))
	})

	t.Run("short number rejected", func(t *testing.T) {
		in := valid
		in.Number = "123"
		errs := Validate(in, now)
		assert.Contains(t, errs, FieldNumber)
	})

	t.Run("sixteen digit number accepted", func(t *testing.T) {
		in := valid
		in.Number = "1234567890123456"
		assert.NotContains(t, Validate(in, now), FieldNumber)
	})

	t.Run("past month rejected", func(t *testing.T) {
		in := valid
		in.Expiry = "05/26"
		errs := Validate(in, now)
		assert.Equal(t, "Card has expired", errs[FieldExpiry])
	})

	t.Run("current month accepted", func(t *testing.T) {
		in := valid
		in.Expiry = "06/26"
		assert.NotContains(t, Validate(in, now), FieldExpiry)
	})

	t.Run("month out of range rejected", func(t *testing.T) {
		in := valid
		in.Expiry = "13/27"
		assert.Contains(t, Validate(in, now), FieldExpiry)
	})

	t.Run("cvc length", func(t *testing.T) {
		in := valid
		in.CVC = "12"
		assert.Contains(t, Validate(in, now), FieldCVC)
		in.CVC = "1234"
		assert.NotContains(t, Validate(in, now), FieldCVC)
		in.CVC = "12345"
		assert.Contains(t, Validate(in, now), FieldCVC)
	})

	t.Run("single name token rejected", func(t *testing.T) {
		in := valid
		in.CardholderName = "Prince"
		assert.Contains(t, Validate(in, now), FieldName)
	})

	t.Run("numeric name rejected", func(t *testing.T) {
		in := valid
		in.CardholderName = "Jane D03"
		assert.Contains(t, Validate(in, now), FieldName)
	})
}
