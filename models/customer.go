package models

// Customer statuses
const (
	CustomerStatusActive  = "Active"
	CustomerStatusClosed  = "Closed"
	CustomerStatusDeleted = "Deleted"
)

// Customer represents a customer in the database
type Customer struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	OfficePhone string `json:"officePhone"`
	CellPhone   string `json:"cellPhone"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// CustomerRequest represents the request body for creating or updating a customer
// Example: {"firstName": "Ana", "lastName": "Lopez", "cellPhone": "555-0100", "status": "Active"}
type CustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	OfficePhone string `json:"officePhone"`
	CellPhone   string `json:"cellPhone"`
	Email       string `json:"email"`
	Status      string `json:"status,omitempty"`
}

// CustomerGroup is one initial letter in the customer list
type CustomerGroup struct {
	Letter    string     `json:"letter"`
	Customers []Customer `json:"customers"`
}

// CustomerSummary is a customer with the figures of their latest order
// Example response:
//
//	{
//	  "customer": {"id": 7, "firstName": "Ana", ...},
//	  "latestOrder": {"campaignYear": 2025, "campaignNumber": 4, "orderTotal": 10939, ...}
//	}
type CustomerSummary struct {
	Customer    Customer      `json:"customer"`
	LatestOrder *OrderSummary `json:"latestOrder"`
}
