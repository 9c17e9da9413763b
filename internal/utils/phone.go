package utils

import (
	"fmt"
	"strings"

	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/ttacon/libphonenumber"
)

// NormalizePhone converts a raw phone number to E.164 form, using the default
// region for numbers without a country prefix. Idempotent: an already
// normalized number comes back unchanged.
func NormalizePhone(phone string, defaultRegion string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return "", fmt.Errorf("%w: phone number is required", apperrors.ErrValidation)
	}

	p, err := libphonenumber.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: invalid phone number %q: %v", apperrors.ErrValidation, trimmed, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%w: phone number %q is not valid", apperrors.ErrValidation, trimmed)
	}

	return libphonenumber.Format(p, libphonenumber.E164), nil
}
