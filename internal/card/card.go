// Package card formats and pre-validates manually entered card fields.
// These checks are cosmetic: they gate form submission so obviously broken
// input never reaches the payment processor, which owns real verification.
package card

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const maxCardDigits = 16

// Field names used as keys in the validation result.
const (
	FieldNumber = "card_number"
	FieldExpiry = "expiry_date"
	FieldCVC    = "cvc"
	FieldName   = "cardholder_name"
)

// Input holds the raw card form fields.
type Input struct {
	Number         string
	Expiry         string
	CVC            string
	CardholderName string
}

// digitsOnly strips everything that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatNumber strips non-digits, caps at 16 digits and regroups into
// blocks of 4: "4242424242424242" -> "4242 4242 4242 4242".
func FormatNumber(s string) string {
	digits := digitsOnly(s)
	if len(digits) > maxCardDigits {
		digits = digits[:maxCardDigits]
	}

	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry strips non-digits, caps at 4 digits and inserts the slash
// after the month: "1225" -> "12/25".
func FormatExpiry(s string) string {
	digits := digitsOnly(s)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// Validate checks all fields and returns a field -> message map. An empty
// map means the form may be submitted. The expiry comparison uses now's
// month: the current month is still valid, anything strictly earlier is not.
func Validate(in Input, now time.Time) map[string]string {
	errs := make(map[string]string)

	if msg := validateNumber(in.Number); msg != "" {
		errs[FieldNumber] = msg
	}
	if msg := validateExpiry(in.Expiry, now); msg != "" {
		errs[FieldExpiry] = msg
	}
	if msg := validateCVC(in.CVC); msg != "" {
		errs[FieldCVC] = msg
	}
	if msg := validateCardholderName(in.CardholderName); msg != "" {
		errs[FieldName] = msg
	}

	return errs
}

func validateNumber(s string) string {
	digits := digitsOnly(s)
	if len(digits) != maxCardDigits {
		return "Card number must be 16 digits"
	}
	return ""
}

func validateExpiry(s string, now time.Time) string {
	digits := digitsOnly(s)
	if len(digits) != 4 {
		return "Expiry date must be in MM/YY format"
	}

	month, err := strconv.Atoi(digits[:2])
	if err != nil || month < 1 || month > 12 {
		return "Expiry month must be between 01 and 12"
	}
	year, err := strconv.Atoi(digits[2:])
	if err != nil {
		return "Expiry date must be in MM/YY format"
	}
	year += 2000

	nowYear, nowMonth := now.Year(), int(now.Month())
	if year < nowYear || (year == nowYear && month < nowMonth) {
		return "Card has expired"
	}
	return ""
}

func validateCVC(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 3 || len(trimmed) > 4 || digitsOnly(trimmed) != trimmed {
		return "CVC must be 3 or 4 digits"
	}
	return ""
}

func validateCardholderName(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return "Cardholder name must include first and last name"
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				return "Cardholder name may only contain letters"
			}
		}
	}
	return ""
}
