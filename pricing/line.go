package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"avon-hello/utils"
)

// ErrMalformedLine is returned for line cells that are not valid numbers
var ErrMalformedLine = errors.New("malformed order line")

var hundred = decimal.NewFromInt(100)

// LineInput is an already validated order line
type LineInput struct {
	Qty               int
	UnitPrice         decimal.Decimal
	RegPrice          decimal.Decimal
	DiscountPercent   decimal.Decimal
	TaxApplied        bool
	ProcessingApplied bool
}

// Cell is a form cell as typed by the user. It decodes from a JSON string or number.
type Cell string

// UnmarshalJSON accepts "2", 2 and null
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	*c = Cell(data)
	return nil
}

// RawLine holds the pricing cells of one line exactly as entered
type RawLine struct {
	Qty               Cell `json:"qty"`
	UnitPrice         Cell `json:"unitPrice"`
	RegPrice          Cell `json:"regPrice"`
	DiscountPercent   Cell `json:"discount"`
	TaxApplied        bool `json:"tax"`
	ProcessingApplied bool `json:"processing"`
}

// Parse validates the cells. Empty cells count as zero.
func (r RawLine) Parse() (LineInput, error) {
	var in LineInput

	qtyText := strings.TrimSpace(string(r.Qty))
	if qtyText != "" {
		qty, err := strconv.Atoi(qtyText)
		if err != nil || qty < 0 {
			return LineInput{}, fmt.Errorf("%w: quantity %q", ErrMalformedLine, qtyText)
		}
		in.Qty = qty
	}

	var err error
	if in.UnitPrice, err = parsePrice(r.UnitPrice); err != nil {
		return LineInput{}, fmt.Errorf("%w: unit price %q", ErrMalformedLine, r.UnitPrice)
	}
	if in.RegPrice, err = parsePrice(r.RegPrice); err != nil {
		return LineInput{}, fmt.Errorf("%w: regular price %q", ErrMalformedLine, r.RegPrice)
	}

	discountText := strings.TrimSuffix(strings.TrimSpace(string(r.DiscountPercent)), "%")
	if discountText != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(discountText))
		if err != nil || d.IsNegative() || d.GreaterThan(hundred) {
			return LineInput{}, fmt.Errorf("%w: discount %q", ErrMalformedLine, r.DiscountPercent)
		}
		in.DiscountPercent = d
	}

	in.TaxApplied = r.TaxApplied
	in.ProcessingApplied = r.ProcessingApplied
	return in, nil
}

// parsePrice accepts non-negative amounts with at most two decimals
func parsePrice(c Cell) (decimal.Decimal, error) {
	d, err := utils.ParseMoney(string(c))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative price")
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, errors.New("more than two decimals")
	}
	return d, nil
}

// LinePrice is the priced breakdown of one line. Every amount has two decimals.
type LinePrice struct {
	Base       decimal.Decimal `json:"base"`
	Discount   decimal.Decimal `json:"discount"`
	Tax        decimal.Decimal `json:"tax"`
	Processing decimal.Decimal `json:"processing"`
	Total      decimal.Decimal `json:"total"`
	// Savings is what the customer saved against the regular price
	Savings decimal.Decimal `json:"savings"`
	Skipped bool            `json:"skipped,omitempty"`
	// Input is the validated line that was priced
	Input LineInput `json:"-"`
}

// PriceLine returns the line total at the current rates
func PriceLine(qty int, unitPrice, discountPercent decimal.Decimal, taxApplied, processingApplied bool) decimal.Decimal {
	return defaultEngine.Price(LineInput{
		Qty:               qty,
		UnitPrice:         unitPrice,
		DiscountPercent:   discountPercent,
		TaxApplied:        taxApplied,
		ProcessingApplied: processingApplied,
	}).Total
}

// Price prices one line.
//
// The line is rounded once: tax is applied to the exact discounted amount and
// only the taxed result is rounded, then the processing charge is added.
// Discount and Tax in the breakdown are derived from that single rounding.
func (e *Engine) Price(in LineInput) LinePrice {
	base := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Qty)))
	exact := base.Mul(hundred.Sub(in.DiscountPercent)).Shift(-2)
	discounted := e.round(exact)

	taxed := discounted
	if in.TaxApplied {
		taxed = e.round(exact.Mul(e.taxMultiplier))
	}

	processing := decimal.Zero
	if in.ProcessingApplied {
		processing = e.config.ProcessingCharge
	}

	savings := decimal.Zero
	if in.RegPrice.GreaterThan(in.UnitPrice) {
		savings = in.RegPrice.Sub(in.UnitPrice).Mul(decimal.NewFromInt(int64(in.Qty)))
	}

	return LinePrice{
		Base:       base,
		Discount:   base.Sub(discounted),
		Tax:        taxed.Sub(discounted),
		Processing: processing,
		Total:      taxed.Add(processing),
		Savings:    savings,
		Input:      in,
	}
}

// PriceRaw parses and prices one line as entered
func (e *Engine) PriceRaw(r RawLine) (LinePrice, error) {
	in, err := r.Parse()
	if err != nil {
		return LinePrice{Skipped: true}, err
	}
	return e.Price(in), nil
}
