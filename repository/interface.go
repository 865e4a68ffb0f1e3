package repository

import (
	"context"
	"errors"

	"avon-hello/campaign"
	"avon-hello/models"
)

var (
	// ErrCustomerNotFound is returned when a customer id has no row
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound is returned when an order id has no row
	ErrOrderNotFound = errors.New("order not found")
	// ErrValidation wraps request values the repositories refuse to store
	ErrValidation = errors.New("validation failed")
)

// CustomerRepositoryInterface defines the contract for customer repository operations
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *models.CustomerRequest) (*models.Customer, error)
	Search(ctx context.Context, firstName, lastName string) ([]models.Customer, error)
	ListGrouped(ctx context.Context, groupBy string) ([]models.CustomerGroup, error)
	Summary(ctx context.Context, id int64) (*models.CustomerSummary, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, customerID int64, req *models.CreateOrderRequest) (*models.OrderResponse, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.OrderSummary, error)
	ReplaceLines(ctx context.Context, id int64, lines []models.OrderLineRequest) (*models.OrderResponse, error)
	RecordPayment(ctx context.Context, id int64, amountCents int64) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// CampaignRepositoryInterface defines the contract for the campaign settings log
type CampaignRepositoryInterface interface {
	Current(ctx context.Context) (*models.CampaignSettings, error)
	Step(ctx context.Context, dir campaign.Direction) (*models.CampaignSettings, error)
	Set(ctx context.Context, c campaign.Counter) (*models.CampaignSettings, error)
	SetLastCampaign(ctx context.Context, last int) (*models.CampaignSettings, error)
	History(ctx context.Context, limit int) ([]models.CampaignSettings, error)
}

// RepresentativeRepositoryInterface defines the contract for representative info
type RepresentativeRepositoryInterface interface {
	Get(ctx context.Context) (*models.Representative, error)
	Save(ctx context.Context, rep *models.Representative) (*models.Representative, error)
}
