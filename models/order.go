package models

import "avon-hello/pricing"

// Order represents an order in the database. Amounts are in cents.
type Order struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customerId"`
	CampaignYear    int         `json:"campaignYear"`
	CampaignNumber  int         `json:"campaignNumber"`
	OrderTotal      int64       `json:"orderTotal"`
	PreviousBalance int64       `json:"previousBalance"`
	Payment         int64       `json:"payment"`
	NetDue          int64       `json:"netDue"`
	TimeSubmitted   string      `json:"timeSubmitted"`
	LastEdited      string      `json:"lastEdited"`
	Lines           []OrderLine `json:"lines,omitempty"`
}

// OrderLine represents a row of order_products. Amounts are in cents.
type OrderLine struct {
	ID              int64  `json:"id"`
	OrderID         int64  `json:"orderId"`
	ProductNumber   string `json:"productNumber"`
	Page            string `json:"page"`
	Description     string `json:"description"`
	Shade           string `json:"shade"`
	Size            string `json:"size"`
	Qty             int    `json:"qty"`
	UnitPrice       int64  `json:"unitPrice"`
	RegPrice        int64  `json:"regPrice"`
	Tax             bool   `json:"tax"`
	Processing      bool   `json:"processing"`
	DiscountPercent string `json:"discount"`
	TotalPrice      int64  `json:"totalPrice"`
}

// OrderSummary is the header of an order without its lines
type OrderSummary struct {
	OrderID         int64 `json:"orderId"`
	CampaignYear    int   `json:"campaignYear"`
	CampaignNumber  int   `json:"campaignNumber"`
	OrderTotal      int64 `json:"orderTotal"`
	PreviousBalance int64 `json:"previousBalance"`
	Payment         int64 `json:"payment"`
	NetDue          int64 `json:"netDue"`
}

// OrderLineRequest is one line as entered in the order form.
// Pricing cells are text so malformed entries can be skipped rather than rejected.
type OrderLineRequest struct {
	ProductNumber string `json:"productNumber"`
	Page          string `json:"page"`
	Description   string `json:"description"`
	Shade         string `json:"shade"`
	Size          string `json:"size"`
	pricing.RawLine
}

// CreateOrderRequest represents the request body for creating an order
// Example:
//
//	{
//	  "campaignYear": 2025, "campaignNumber": 4,
//	  "payment": "20.00",
//	  "lines": [{"productNumber": "123-456", "page": "12", "description": "Lipstick",
//	             "qty": "2", "unitPrice": "$6.99", "regPrice": "$9.99", "discount": "0", "tax": true}]
//	}
//
// Campaign fields default to the current campaign, previousBalance to the net due
// of the customer's latest order.
type CreateOrderRequest struct {
	CampaignYear    int                `json:"campaignYear,omitempty"`
	CampaignNumber  int                `json:"campaignNumber,omitempty"`
	PreviousBalance *pricing.Cell      `json:"previousBalance,omitempty"`
	Payment         pricing.Cell       `json:"payment,omitempty"`
	Lines           []OrderLineRequest `json:"lines"`
}

// UpdateOrderLinesRequest replaces the lines of an order
type UpdateOrderLinesRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// PaymentRequest records a payment against an order
// Example: {"amount": "25.00"}
type PaymentRequest struct {
	Amount pricing.Cell `json:"amount"`
}

// OrderResponse is an order with the totals computed for it
type OrderResponse struct {
	Order
	Totals  pricing.OrderTotals `json:"totals"`
	Skipped []int               `json:"skipped"`
}
