// Package normalizer provides the cleansing rules applied to raw customer
// and order rows before they are joined or persisted.
package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMobileTooShort is returned when a mobile number has fewer than 10
// digits after stripping formatting.
var ErrMobileTooShort = errors.New("mobile number has fewer than 10 digits")

const mobileDigits = 10

// NormalizeMobile canonicalizes a raw mobile number:
//  1. Strip every non-digit character.
//  2. Keep the last 10 digits (drops country codes such as "+91").
//  3. Reject values with fewer than 10 digits remaining.
//  4. Parse the retained digits as an int64 identifier.
//
// Values with more than 10 digits silently lose their leading digits;
// that truncation is the domain convention for Indian mobile numbers.
func NormalizeMobile(raw string) (int64, error) {
	var b strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < mobileDigits {
		return 0, fmt.Errorf("%w: %q", ErrMobileTooShort, raw)
	}

	digits = digits[len(digits)-mobileDigits:]

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse mobile number %q: %w", raw, err)
	}

	return n, nil
}
