package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	controlRegex  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateCurrency validates a three-letter ISO currency code
func ValidateCurrency(code string) error {
	if !currencyRegex.MatchString(code) {
		return fmt.Errorf("currency must be a three-letter ISO code: %s", code)
	}
	return nil
}

// ValidateAmountCents validates a monetary amount in minor units
func ValidateAmountCents(amountCents int64) error {
	if amountCents <= 0 {
		return fmt.Errorf("amount must be positive: %d", amountCents)
	}
	return nil
}

// SanitizeString removes control characters from user input
func SanitizeString(s string) string {
	return controlRegex.ReplaceAllString(s, "")
}
