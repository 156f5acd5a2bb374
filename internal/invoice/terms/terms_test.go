package terms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, value := range []string{"NET7", "NET15", "NET30", "NET45", "NET60", "DUE_ON_RECEIPT"} {
		parsed, err := Parse(value)
		require.NoError(t, err)
		assert.Equal(t, PaymentTerms(value), parsed)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, value := range []string{"", "NET90", "net30", "ON_RECEIPT"} {
		_, err := Parse(value)
		assert.ErrorIs(t, err, ErrUnknownTerms, value)
	}
}

func TestResolveDueDate(t *testing.T) {
	issue, err := ParseDate("2024-01-28")
	require.NoError(t, err)

	cases := []struct {
		terms PaymentTerms
		want  string
	}{
		{Net7, "2024-02-04"},
		{Net15, "2024-02-12"},
		{Net30, "2024-02-27"},
		{Net45, "2024-03-13"},
		{Net60, "2024-03-28"},
		{DueOnReceipt, "2024-01-28"},
	}
	for _, tc := range cases {
		due, err := ResolveDueDate(issue, tc.terms)
		require.NoError(t, err)
		assert.Equal(t, tc.want, FormatDate(due), string(tc.terms))
	}
}

func TestResolveDueDateYearRollover(t *testing.T) {
	issue, err := ParseDate("2024-12-20")
	require.NoError(t, err)

	due, err := ResolveDueDate(issue, Net30)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-19", FormatDate(due))
}

func TestResolveDueDateUnknownTerms(t *testing.T) {
	_, err := ResolveDueDate(time.Now(), PaymentTerms("NET90"))
	assert.ErrorIs(t, err, ErrUnknownTerms)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseDate("02/29/2024")
	assert.Error(t, err)
}
