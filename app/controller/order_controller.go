package controller

import (
	"net/http"

	"go.uber.org/zap"

	"avon-hello/logger"
	"avon-hello/models"
	"avon-hello/repository"
	"avon-hello/utils"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface) *OrderController {
	return &OrderController{
		repository: repo,
	}
}

// ListByCustomer handles GET /admin/customers/{id}/orders
func (c *OrderController) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "ListOrders")
	if !ok {
		return
	}

	orders, err := c.repository.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, "ListOrders", err)
		return
	}
	writeJSON(w, "ListOrders", http.StatusOK, orders)
}

// Create handles POST /admin/customers/{id}/orders
// Example request:
// POST /admin/customers/7/orders
//
//	{
//	  "payment": "20.00",
//	  "lines": [{"productNumber": "123-456", "qty": "2", "unitPrice": "6.99", "tax": true}]
//	}
//
// Malformed lines are left out; their indexes are returned in "skipped".
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "CreateOrder")
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if !decodeJSON(w, r, "CreateOrder", &req) {
		return
	}

	order, err := c.repository.Create(r.Context(), customerID, &req)
	if err != nil {
		writeError(w, "CreateOrder", err)
		return
	}
	writeJSON(w, "CreateOrder", http.StatusCreated, order)
}

// Get handles GET /admin/orders/{id}
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "GetOrder")
	if !ok {
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "GetOrder", err)
		return
	}
	writeJSON(w, "GetOrder", http.StatusOK, order)
}

// ReplaceLines handles PUT /admin/orders/{id}/lines
// Example request: {"lines": [{"qty": "1", "unitPrice": "4.99"}]}
func (c *OrderController) ReplaceLines(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "ReplaceLines")
	if !ok {
		return
	}

	var req models.UpdateOrderLinesRequest
	if !decodeJSON(w, r, "ReplaceLines", &req) {
		return
	}

	order, err := c.repository.ReplaceLines(r.Context(), id, req.Lines)
	if err != nil {
		writeError(w, "ReplaceLines", err)
		return
	}
	writeJSON(w, "ReplaceLines", http.StatusOK, order)
}

// RecordPayment handles POST /admin/orders/{id}/payment
// Example request: {"amount": "25.00"}
func (c *OrderController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "RecordPayment")
	if !ok {
		return
	}

	var req models.PaymentRequest
	if !decodeJSON(w, r, "RecordPayment", &req) {
		return
	}
	amount, err := utils.ParseMoney(string(req.Amount))
	if err != nil || amount.IsNegative() {
		logger.Warn("❌ RecordPayment: Invalid amount", zap.String("amount", string(req.Amount)))
		http.Error(w, "amount must be a non-negative number", http.StatusBadRequest)
		return
	}

	order, err := c.repository.RecordPayment(r.Context(), id, utils.ToCents(amount))
	if err != nil {
		writeError(w, "RecordPayment", err)
		return
	}
	writeJSON(w, "RecordPayment", http.StatusOK, order)
}

// Delete handles DELETE /admin/orders/{id}
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "DeleteOrder")
	if !ok {
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeError(w, "DeleteOrder", err)
		return
	}
	logger.Info("✅ DeleteOrder: Order deleted", zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
