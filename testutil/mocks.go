// Package testutil holds testify mocks of the repository and service contracts.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"avon-hello/campaign"
	"avon-hello/models"
	"avon-hello/repository"
	"avon-hello/service"
)

// MockCustomerRepository mocks repository.CustomerRepositoryInterface
type MockCustomerRepository struct {
	mock.Mock
}

var _ repository.CustomerRepositoryInterface = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id int64, req *models.CustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, firstName, lastName string) ([]models.Customer, error) {
	args := m.Called(ctx, firstName, lastName)
	c, _ := args.Get(0).([]models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) ListGrouped(ctx context.Context, groupBy string) ([]models.CustomerGroup, error) {
	args := m.Called(ctx, groupBy)
	g, _ := args.Get(0).([]models.CustomerGroup)
	return g, args.Error(1)
}

func (m *MockCustomerRepository) Summary(ctx context.Context, id int64) (*models.CustomerSummary, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.CustomerSummary)
	return s, args.Error(1)
}

// MockOrderRepository mocks repository.OrderRepositoryInterface
type MockOrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepositoryInterface = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) Create(ctx context.Context, customerID int64, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	args := m.Called(ctx, customerID, req)
	o, _ := args.Get(0).(*models.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.OrderSummary, error) {
	args := m.Called(ctx, customerID)
	s, _ := args.Get(0).([]models.OrderSummary)
	return s, args.Error(1)
}

func (m *MockOrderRepository) ReplaceLines(ctx context.Context, id int64, lines []models.OrderLineRequest) (*models.OrderResponse, error) {
	args := m.Called(ctx, id, lines)
	o, _ := args.Get(0).(*models.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderRepository) RecordPayment(ctx context.Context, id int64, amountCents int64) (*models.Order, error) {
	args := m.Called(ctx, id, amountCents)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCampaignRepository mocks repository.CampaignRepositoryInterface
type MockCampaignRepository struct {
	mock.Mock
}

var _ repository.CampaignRepositoryInterface = (*MockCampaignRepository)(nil)

func (m *MockCampaignRepository) Current(ctx context.Context) (*models.CampaignSettings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.CampaignSettings)
	return s, args.Error(1)
}

func (m *MockCampaignRepository) Step(ctx context.Context, dir campaign.Direction) (*models.CampaignSettings, error) {
	args := m.Called(ctx, dir)
	s, _ := args.Get(0).(*models.CampaignSettings)
	return s, args.Error(1)
}

func (m *MockCampaignRepository) Set(ctx context.Context, c campaign.Counter) (*models.CampaignSettings, error) {
	args := m.Called(ctx, c)
	s, _ := args.Get(0).(*models.CampaignSettings)
	return s, args.Error(1)
}

func (m *MockCampaignRepository) SetLastCampaign(ctx context.Context, last int) (*models.CampaignSettings, error) {
	args := m.Called(ctx, last)
	s, _ := args.Get(0).(*models.CampaignSettings)
	return s, args.Error(1)
}

func (m *MockCampaignRepository) History(ctx context.Context, limit int) ([]models.CampaignSettings, error) {
	args := m.Called(ctx, limit)
	h, _ := args.Get(0).([]models.CampaignSettings)
	return h, args.Error(1)
}

// MockRepresentativeRepository mocks repository.RepresentativeRepositoryInterface
type MockRepresentativeRepository struct {
	mock.Mock
}

var _ repository.RepresentativeRepositoryInterface = (*MockRepresentativeRepository)(nil)

func (m *MockRepresentativeRepository) Get(ctx context.Context) (*models.Representative, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*models.Representative)
	return r, args.Error(1)
}

func (m *MockRepresentativeRepository) Save(ctx context.Context, rep *models.Representative) (*models.Representative, error) {
	args := m.Called(ctx, rep)
	r, _ := args.Get(0).(*models.Representative)
	return r, args.Error(1)
}

// MockPDFRenderer mocks service.PDFRendererInterface
type MockPDFRenderer struct {
	mock.Mock
}

var _ service.PDFRendererInterface = (*MockPDFRenderer)(nil)

func (m *MockPDFRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// MockBackupService mocks service.BackupServiceInterface
type MockBackupService struct {
	mock.Mock
}

var _ service.BackupServiceInterface = (*MockBackupService)(nil)

func (m *MockBackupService) Run(ctx context.Context) (*service.BackupResult, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*service.BackupResult)
	return r, args.Error(1)
}

func (m *MockBackupService) List(ctx context.Context) ([]service.RemoteFile, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]service.RemoteFile)
	return f, args.Error(1)
}
