package pricing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name       string
		qty        int
		unitPrice  string
		discount   string
		tax        bool
		processing bool
		want       string
	}{
		{"plain", 2, "10.00", "0", false, false, "20.00"},
		{"half off", 2, "10.00", "50", false, false, "10.00"},
		{"tax rounds up to the cent", 1, "100.00", "0", true, false, "109.39"},
		{"processing charge", 1, "100.00", "0", false, true, "100.50"},
		{"zero quantity", 0, "15.99", "0", true, true, "0.50"},
		{"full discount", 3, "4.99", "100", true, false, "0.00"},
		// 25.4745 * 1.09386 = 27.8656 -> 27.87, rounded once
		{"discount then tax", 3, "9.99", "15", true, false, "27.87"},
		{"discount then tax on a round amount", 1, "0.99", "50", true, false, "0.55"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceLine(tt.qty, d(tt.unitPrice), d(tt.discount), tt.tax, tt.processing)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPrice_Breakdown(t *testing.T) {
	lp := Default().Price(LineInput{
		Qty:               2,
		UnitPrice:         d("12.50"),
		RegPrice:          d("20.00"),
		DiscountPercent:   d("10"),
		TaxApplied:        true,
		ProcessingApplied: true,
	})

	assert.Equal(t, "25.00", lp.Base.StringFixed(2))
	assert.Equal(t, "2.50", lp.Discount.StringFixed(2))
	// 22.50 * 1.09386 = 24.61185 -> 24.62
	assert.Equal(t, "2.12", lp.Tax.StringFixed(2))
	assert.Equal(t, "0.50", lp.Processing.StringFixed(2))
	assert.Equal(t, "25.12", lp.Total.StringFixed(2))
	assert.Equal(t, "15.00", lp.Savings.StringFixed(2))

	assert.True(t, lp.Base.Sub(lp.Discount).Add(lp.Tax).Add(lp.Processing).Equal(lp.Total))
}

func TestPriceRaw_Malformed(t *testing.T) {
	for _, raw := range []RawLine{
		{Qty: "abc", UnitPrice: "10"},
		{Qty: "1", UnitPrice: "ten"},
		{Qty: "-1", UnitPrice: "10"},
		{Qty: "1.5", UnitPrice: "10"},
		{Qty: "1", UnitPrice: "10", DiscountPercent: "150"},
		{Qty: "1", UnitPrice: "10", RegPrice: "$x"},
		{Qty: "3", UnitPrice: "0.333"},
		{Qty: "1", UnitPrice: "10", RegPrice: "12.005"},
	} {
		lp, err := Default().PriceRaw(raw)
		assert.ErrorIs(t, err, ErrMalformedLine, "%+v", raw)
		assert.True(t, lp.Skipped)
		assert.True(t, lp.Total.IsZero())
	}
}

func TestPrice_DiscountedTaxedLineBreakdown(t *testing.T) {
	lp := Default().Price(LineInput{Qty: 3, UnitPrice: d("9.99"), DiscountPercent: d("15"), TaxApplied: true})

	assert.Equal(t, "27.87", lp.Total.StringFixed(2))
	assert.Equal(t, "4.49", lp.Discount.StringFixed(2))
	assert.Equal(t, "2.39", lp.Tax.StringFixed(2))
	assert.True(t, lp.Base.Sub(lp.Discount).Add(lp.Tax).Equal(lp.Total))
	assert.Equal(t, 3, lp.Input.Qty)
}

func TestPriceRaw_FormCells(t *testing.T) {
	lp, err := Default().PriceRaw(RawLine{Qty: " 3 ", UnitPrice: "$4.00", RegPrice: "", DiscountPercent: "25%"})
	require.NoError(t, err)
	assert.Equal(t, "9.00", lp.Total.StringFixed(2))

	lp, err = Default().PriceRaw(RawLine{})
	require.NoError(t, err)
	assert.True(t, lp.Total.IsZero())

	lp, err = Default().PriceRaw(RawLine{Qty: "2", UnitPrice: "1.5", RegPrice: "2.500"})
	require.NoError(t, err)
	assert.Equal(t, "3.00", lp.Total.StringFixed(2))
	assert.Equal(t, 2, lp.Input.Qty)
}

func TestTotals_SkipsMalformedLines(t *testing.T) {
	totals := Default().Totals([]RawLine{
		{Qty: "2", UnitPrice: "10.00"},
		{Qty: "abc", UnitPrice: "10.00"},
		{Qty: "1", UnitPrice: "100.00", TaxApplied: true},
		{Qty: "1", UnitPrice: "5.00", ProcessingApplied: true},
	})

	assert.Equal(t, []int{1}, totals.Skipped)
	assert.Len(t, totals.Lines, 4)
	assert.Equal(t, "125.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "9.39", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.50", totals.ProcessingCharge.StringFixed(2))
	assert.Equal(t, "134.89", totals.GrandTotal.StringFixed(2))
}

func TestTotals_PerLineRounding(t *testing.T) {
	// each line: 1.00 * 1.09386 = 1.09386 -> 1.10; three lines sum to 3.30,
	// while taxing the unrounded sum would give 3.29
	line := RawLine{Qty: "1", UnitPrice: "1.00", TaxApplied: true}
	totals := Default().Totals([]RawLine{line, line, line})

	assert.Equal(t, "3.30", totals.GrandTotal.StringFixed(2))
	assert.True(t, totals.GrandTotal.Equal(
		totals.Subtotal.Sub(totals.DiscountTotal).Add(totals.TaxAmount).Add(totals.ProcessingCharge)))
}

func TestTotalsFor(t *testing.T) {
	totals := Default().TotalsFor([]LineInput{
		{Qty: 2, UnitPrice: d("10")},
		{Qty: 1, UnitPrice: d("100"), TaxApplied: true},
	})
	assert.Equal(t, "129.39", totals.GrandTotal.StringFixed(2))
	assert.Empty(t, totals.Skipped)
}

func TestHalfUpRounding(t *testing.T) {
	e, err := NewEngine(Config{TaxRatePercent: d("10"), Rounding: RoundHalfUp})
	require.NoError(t, err)

	// 1.01 * 1.10 = 1.111 -> 1.11 (ceil would give 1.12)
	lp := e.Price(LineInput{Qty: 1, UnitPrice: d("1.01"), TaxApplied: true})
	assert.Equal(t, "1.11", lp.Total.StringFixed(2))
}

func TestNewEngine_ZeroRates(t *testing.T) {
	e, err := NewEngine(Config{})
	require.NoError(t, err)
	assert.Equal(t, RoundCeil, e.Config().Rounding)

	lp := e.Price(LineInput{Qty: 1, UnitPrice: d("10.00"), TaxApplied: true, ProcessingApplied: true})
	assert.Equal(t, "10.00", lp.Total.StringFixed(2))
	assert.True(t, lp.Tax.IsZero())
	assert.True(t, lp.Processing.IsZero())
}

func TestNewEngine_Invalid(t *testing.T) {
	_, err := NewEngine(Config{Rounding: "banker"})
	assert.Error(t, err)

	_, err = NewEngine(Config{TaxRatePercent: d("-1")})
	assert.Error(t, err)
}

func TestLoadEngine(t *testing.T) {
	e, err := LoadEngine("")
	require.NoError(t, err)
	assert.Same(t, Default(), e)

	e, err = LoadEngine(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Same(t, Default(), e)

	path := filepath.Join(t.TempDir(), "pricing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"taxRatePercent": "10", "processingCharge": 0.75, "rounding": "half_up"}`), 0o644))
	e, err = LoadEngine(path)
	require.NoError(t, err)
	assert.Equal(t, "10", e.Config().TaxRatePercent.String())
	assert.Equal(t, "0.75", e.Config().ProcessingCharge.StringFixed(2))
	assert.Equal(t, RoundHalfUp, e.Config().Rounding)

	noFees := filepath.Join(t.TempDir(), "no-fees.json")
	require.NoError(t, os.WriteFile(noFees, []byte(`{"taxRatePercent": 0, "processingCharge": "0"}`), 0o644))
	e, err = LoadEngine(noFees)
	require.NoError(t, err)
	assert.True(t, e.Config().TaxRatePercent.IsZero())
	assert.True(t, e.Config().ProcessingCharge.IsZero())
	assert.Equal(t, RoundCeil, e.Config().Rounding)

	partial := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"rounding": "half_up"}`), 0o644))
	e, err = LoadEngine(partial)
	require.NoError(t, err)
	assert.Equal(t, "9.386", e.Config().TaxRatePercent.String())
	assert.Equal(t, "0.50", e.Config().ProcessingCharge.StringFixed(2))
	assert.Equal(t, RoundHalfUp, e.Config().Rounding)
}

func TestCell_UnmarshalJSON(t *testing.T) {
	var raw RawLine
	require.NoError(t, json.Unmarshal([]byte(`{"qty": 2, "unitPrice": "$10.00", "regPrice": null, "discount": 5.5, "tax": true}`), &raw))

	assert.Equal(t, Cell("2"), raw.Qty)
	assert.Equal(t, Cell("$10.00"), raw.UnitPrice)
	assert.Equal(t, Cell(""), raw.RegPrice)
	assert.Equal(t, Cell("5.5"), raw.DiscountPercent)
	assert.True(t, raw.TaxApplied)
}
