package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"avon-hello/logger"
)

// OrderTotals is derived from the full set of lines and never stored on its own
type OrderTotals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountTotal    decimal.Decimal `json:"discountTotal"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	ProcessingCharge decimal.Decimal `json:"processingCharge"`
	GrandTotal       decimal.Decimal `json:"grandTotal"`
	Savings          decimal.Decimal `json:"savings"`
	Lines            []LinePrice     `json:"lines"`
	// Skipped lists the indexes of malformed lines left out of the totals
	Skipped []int `json:"skipped"`
}

// Totals prices every line and sums the individually rounded results.
// Malformed lines contribute nothing; they are reported in Skipped.
func (e *Engine) Totals(lines []RawLine) OrderTotals {
	t := OrderTotals{
		Lines:   make([]LinePrice, 0, len(lines)),
		Skipped: []int{},
	}
	for i, raw := range lines {
		lp, err := e.PriceRaw(raw)
		if err != nil {
			logger.Debug("💰 Totals: skipping line", zap.Int("line", i), zap.Error(err))
			t.Skipped = append(t.Skipped, i)
			t.Lines = append(t.Lines, lp)
			continue
		}
		t.add(lp)
	}
	return t
}

// TotalsFor sums already validated lines
func (e *Engine) TotalsFor(lines []LineInput) OrderTotals {
	t := OrderTotals{
		Lines:   make([]LinePrice, 0, len(lines)),
		Skipped: []int{},
	}
	for _, in := range lines {
		t.add(e.Price(in))
	}
	return t
}

func (t *OrderTotals) add(lp LinePrice) {
	t.Lines = append(t.Lines, lp)
	t.Subtotal = t.Subtotal.Add(lp.Base)
	t.DiscountTotal = t.DiscountTotal.Add(lp.Discount)
	t.TaxAmount = t.TaxAmount.Add(lp.Tax)
	t.ProcessingCharge = t.ProcessingCharge.Add(lp.Processing)
	t.GrandTotal = t.GrandTotal.Add(lp.Total)
	t.Savings = t.Savings.Add(lp.Savings)
}
