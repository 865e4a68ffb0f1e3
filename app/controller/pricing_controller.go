package controller

import (
	"net/http"

	"avon-hello/pricing"
)

// PricingPreviewRequest is the body of POST /admin/pricing/preview
type PricingPreviewRequest struct {
	Lines []pricing.RawLine `json:"lines"`
}

// PricingController prices order lines without saving them
type PricingController struct {
	engine *pricing.Engine
}

// NewPricingController creates a new PricingController
func NewPricingController(engine *pricing.Engine) *PricingController {
	if engine == nil {
		engine = pricing.Default()
	}
	return &PricingController{engine: engine}
}

// Preview handles POST /admin/pricing/preview
// Example request:
// {"lines": [{"qty": "3", "unitPrice": "$9.99", "discount": "15", "tax": true}]}
// Example response:
// {"subtotal": "29.97", "discountTotal": "4.49", "taxAmount": "2.39", "grandTotal": "27.87", ...}
func (c *PricingController) Preview(w http.ResponseWriter, r *http.Request) {
	var req PricingPreviewRequest
	if !decodeJSON(w, r, "PricingPreview", &req) {
		return
	}
	writeJSON(w, "PricingPreview", http.StatusOK, c.engine.Totals(req.Lines))
}

// Config handles GET /admin/pricing/config
func (c *PricingController) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "PricingConfig", http.StatusOK, c.engine.Config())
}
