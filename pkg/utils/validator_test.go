package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("sales@acme.example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.domain.io"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("USD"))
	assert.Error(t, ValidateCurrency("usd"))
	assert.Error(t, ValidateCurrency("DOLLARS"))
	assert.Error(t, ValidateCurrency(""))
}

func TestValidateAmountCents(t *testing.T) {
	assert.NoError(t, ValidateAmountCents(1))
	assert.Error(t, ValidateAmountCents(0))
	assert.Error(t, ValidateAmountCents(-100))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("hello\x00 world\x1f"))
	assert.Equal(t, "plain", SanitizeString("plain"))
}
