// Package ident produces the shop's stable identifiers: sequential 6-digit
// phone numbers, normalized barcode input, and invoice-style sale numbers.
package ident

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	// PhoneNumberDigits is the canonical width of internal phone numbers.
	PhoneNumberDigits = 6
	// maxPhoneNumber is the last value the allocator may hand out.
	maxPhoneNumber = 100000

	saleNumberPrefix = "INV"
)

// ErrCapacityExceeded is returned once the phone number space is exhausted.
var ErrCapacityExceeded = errors.New("ident: phone number capacity exceeded")

// ErrInvalidBarcode is returned for barcode input with no usable digits.
var ErrInvalidBarcode = errors.New("ident: invalid barcode input")

// NextPhoneNumber computes the successor of the highest allocated phone
// number. An empty maxExisting starts the sequence at 000001. Allocation is
// serialized by the caller through the unique constraint on the stored
// column, retrying on conflict.
func NextPhoneNumber(maxExisting string) (string, error) {
	next := 1
	if trimmed := strings.TrimSpace(maxExisting); trimmed != "" {
		current, err := strconv.Atoi(trimmed)
		if err != nil {
			return "", fmt.Errorf("ident: malformed phone number %q: %w", maxExisting, err)
		}
		next = current + 1
	}
	if next > maxPhoneNumber {
		return "", ErrCapacityExceeded
	}
	return fmt.Sprintf("%0*d", PhoneNumberDigits, next), nil
}

// NormalizeBarcode strips everything but digits from scanner input. A
// 6-digit result is the canonical internal format; any other all-digit
// string is accepted as-is so externally printed codes still resolve.
func NormalizeBarcode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return "", ErrInvalidBarcode
	}
	return cleaned, nil
}

// IsCanonicalPhoneNumber reports whether the value is in the internal
// 6-digit format.
func IsCanonicalPhoneNumber(value string) bool {
	if len(value) != PhoneNumberDigits {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewSaleNumber builds a sale number of the form INV-<timestamp>-<suffix>
// with second precision and a 4-digit random suffix. Uniqueness is enforced
// by the sales table constraint; callers regenerate and retry on conflict.
func NewSaleNumber(t time.Time) string {
	suffix := 1000 + rand.IntN(9000)
	return fmt.Sprintf("%s-%s-%04d", saleNumberPrefix, t.Format("20060102150405"), suffix)
}
