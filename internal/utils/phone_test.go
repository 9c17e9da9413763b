package utils_test

import (
	"testing"

	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"local number with spaces", "98765 43210", "IN", "+919876543210"},
		{"already normalized", "+919876543210", "IN", "+919876543210"},
		{"prefixed number with other region", "+919876543210", "US", "+919876543210"},
		{"local with dashes", "98765-43210", "IN", "+919876543210"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.NormalizePhone(tc.input, tc.region)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	once, err := utils.NormalizePhone("98765 43210", "IN")
	require.NoError(t, err)
	twice, err := utils.NormalizePhone(once, "IN")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalizePhoneInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "12", "not-a-number"} {
		_, err := utils.NormalizePhone(input, "IN")
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", input)
	}
}
