package inventory

import (
	"errors"
	"strings"
)

// ErrInvalidBarcode is returned for codes that are not 8 to 13 digits.
var ErrInvalidBarcode = errors.New("barcode must be 8 to 13 digits")

// ErrProductNotFound is returned when the product database has no entry.
var ErrProductNotFound = errors.New("product not found")

// NormalizeBarcode strips spaces and dashes and validates an EAN/UPC code.
func NormalizeBarcode(raw string) (string, error) {
	code := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if len(code) < 8 || len(code) > 13 {
		return "", ErrInvalidBarcode
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", ErrInvalidBarcode
		}
	}
	return code, nil
}
