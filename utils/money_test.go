package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{10950, "$109.50"},
		{123456789, "$1,234,567.89"},
		{-2050, "-$20.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(tt.cents))
	}
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney(" $1,234.50 ")
	require.NoError(t, err)
	assert.Equal(t, "1234.50", d.StringFixed(2))

	d, err = ParseMoney("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseMoney("abc")
	assert.Error(t, err)
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(10939), ToCents(decimal.RequireFromString("109.39")))
	assert.Equal(t, int64(1), ToCents(decimal.RequireFromString("0.005")))
	assert.Equal(t, "109.39", FromCents(10939).StringFixed(2))
}
