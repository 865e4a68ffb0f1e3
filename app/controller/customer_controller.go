package controller

import (
	"net/http"

	"go.uber.org/zap"

	"avon-hello/logger"
	"avon-hello/models"
	"avon-hello/repository"
)

// CustomerController handles HTTP requests for customers
type CustomerController struct {
	repository repository.CustomerRepositoryInterface
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(repo repository.CustomerRepositoryInterface) *CustomerController {
	return &CustomerController{
		repository: repo,
	}
}

// List handles GET /admin/customers?groupBy=first|last
// Example response:
//
//	[{"letter": "L", "customers": [{"id": 7, "firstName": "Ana", "lastName": "Lopez", ...}]}]
func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")
	switch groupBy {
	case "":
		groupBy = repository.GroupByLastName
	case repository.GroupByFirstName, repository.GroupByLastName:
	default:
		http.Error(w, "groupBy must be first or last", http.StatusBadRequest)
		return
	}

	groups, err := c.repository.ListGrouped(r.Context(), groupBy)
	if err != nil {
		writeError(w, "ListCustomers", err)
		return
	}
	writeJSON(w, "ListCustomers", http.StatusOK, groups)
}

// Search handles GET /admin/customers/search?first=an&last=lo
func (c *CustomerController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers, err := c.repository.Search(r.Context(), q.Get("first"), q.Get("last"))
	if err != nil {
		writeError(w, "SearchCustomers", err)
		return
	}
	writeJSON(w, "SearchCustomers", http.StatusOK, customers)
}

// Create handles POST /admin/customers
// Example request:
// POST /admin/customers
// {"firstName": "Ana", "lastName": "Lopez", "cellPhone": "555-0100"}
func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	logger.Info("📥 CreateCustomer: Received request", zap.String("path", r.URL.Path))

	var req models.CustomerRequest
	if !decodeJSON(w, r, "CreateCustomer", &req) {
		return
	}

	customer, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		writeError(w, "CreateCustomer", err)
		return
	}
	writeJSON(w, "CreateCustomer", http.StatusCreated, customer)
}

// Get handles GET /admin/customers/{id}
// The response carries the figures of the customer's latest order.
func (c *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "GetCustomer")
	if !ok {
		return
	}

	summary, err := c.repository.Summary(r.Context(), id)
	if err != nil {
		writeError(w, "GetCustomer", err)
		return
	}
	writeJSON(w, "GetCustomer", http.StatusOK, summary)
}

// Update handles PUT /admin/customers/{id}
func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "UpdateCustomer")
	if !ok {
		return
	}

	var req models.CustomerRequest
	if !decodeJSON(w, r, "UpdateCustomer", &req) {
		return
	}

	customer, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, "UpdateCustomer", err)
		return
	}
	writeJSON(w, "UpdateCustomer", http.StatusOK, customer)
}
