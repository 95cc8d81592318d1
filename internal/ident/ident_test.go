package ident_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phoneshop-api/internal/ident"
)

func TestNextPhoneNumberSequence(t *testing.T) {
	seen := make(map[string]struct{})
	current := ""
	for i := 0; i < 100; i++ {
		next, err := ident.NextPhoneNumber(current)
		require.NoError(t, err)
		require.Len(t, next, 6)
		require.True(t, ident.IsCanonicalPhoneNumber(next))
		_, dup := seen[next]
		require.False(t, dup, "duplicate %s", next)
		seen[next] = struct{}{}
		current = next
	}
	require.Len(t, seen, 100)
	require.Equal(t, "000001", firstKeyOrdered(t))
}

func firstKeyOrdered(t *testing.T) string {
	t.Helper()
	first, err := ident.NextPhoneNumber("")
	require.NoError(t, err)
	return first
}

func TestNextPhoneNumberCapacity(t *testing.T) {
	last, err := ident.NextPhoneNumber("099999")
	require.NoError(t, err)
	require.Equal(t, "100000", last)

	_, err = ident.NextPhoneNumber("100000")
	require.ErrorIs(t, err, ident.ErrCapacityExceeded)
}

func TestNextPhoneNumberMalformed(t *testing.T) {
	_, err := ident.NextPhoneNumber("12ab34")
	require.Error(t, err)
}

func TestNormalizeBarcode(t *testing.T) {
	got, err := ident.NormalizeBarcode("12-34 56")
	require.NoError(t, err)
	require.Equal(t, "123456", got)
	require.True(t, ident.IsCanonicalPhoneNumber(got))

	_, err = ident.NormalizeBarcode("abc")
	require.ErrorIs(t, err, ident.ErrInvalidBarcode)

	// longer digit strings are accepted but not canonical
	got, err = ident.NormalizeBarcode("1234567")
	require.NoError(t, err)
	require.Equal(t, "1234567", got)
	require.False(t, ident.IsCanonicalPhoneNumber(got))
}

func TestNewSaleNumberFormat(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	pattern := regexp.MustCompile(`^INV-20240309140506-\d{4}$`)
	for i := 0; i < 20; i++ {
		n := ident.NewSaleNumber(at)
		require.Regexp(t, pattern, n)
	}
}
