package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avon-hello/campaign"
	"avon-hello/db"
	"avon-hello/models"
	"avon-hello/pricing"
)

func setupTestDB(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	db.UseDB(conn, db.DriverSQLite)
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(func() { conn.Close() })
	return ctx
}

func createCustomer(t *testing.T, ctx context.Context, first, last string) *models.Customer {
	t.Helper()
	c, err := NewCustomerRepository().Create(ctx, &models.CustomerRequest{FirstName: first, LastName: last})
	require.NoError(t, err)
	return c
}

func line(qty, unit, discount string, tax bool) models.OrderLineRequest {
	return models.OrderLineRequest{
		ProductNumber: "123-456",
		Description:   "Lipstick",
		RawLine: pricing.RawLine{
			Qty:             pricing.Cell(qty),
			UnitPrice:       pricing.Cell(unit),
			DiscountPercent: pricing.Cell(discount),
			TaxApplied:      tax,
		},
	}
}

func TestCustomerRepository_CreateGetUpdate(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewCustomerRepository()

	c, err := repo.Create(ctx, &models.CustomerRequest{FirstName: " Ana ", LastName: "Lopez", CellPhone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.FirstName)
	assert.Equal(t, models.CustomerStatusActive, c.Status)
	assert.NotEmpty(t, c.CreatedAt)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	updated, err := repo.Update(ctx, c.ID, &models.CustomerRequest{FirstName: "Ana", LastName: "Lopez", Status: models.CustomerStatusClosed})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusClosed, updated.Status)
	assert.Empty(t, updated.CellPhone)
}

func TestCustomerRepository_Errors(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewCustomerRepository()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = repo.Update(ctx, 42, &models.CustomerRequest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = repo.Create(ctx, &models.CustomerRequest{FirstName: "Ana"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Create(ctx, &models.CustomerRequest{FirstName: "Ana", LastName: "Lopez", Status: "Gone"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerRepository_Search(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewCustomerRepository()
	createCustomer(t, ctx, "Ana", "Lopez")
	createCustomer(t, ctx, "Andrea", "Long")
	createCustomer(t, ctx, "Beatriz", "Lopez")

	tests := []struct {
		name        string
		first, last string
		want        []string
	}{
		{"first prefix", "an", "", []string{"Andrea", "Ana"}},
		{"last prefix case-insensitive", "", "LOP", []string{"Ana", "Beatriz"}},
		{"both", "b", "lo", []string{"Beatriz"}},
		{"no match", "z", "", nil},
		{"wildcards are literal", "%", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.first, tt.last)
			require.NoError(t, err)
			var names []string
			for _, c := range got {
				names = append(names, c.FirstName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGroupCustomers(t *testing.T) {
	customers := []models.Customer{
		{FirstName: "zoe", LastName: "Adams"},
		{FirstName: "Ana", LastName: "lopez"},
		{FirstName: "Bea", LastName: "Lara"},
		{FirstName: "Cy", LastName: "9th"},
	}

	byLast := GroupCustomers(customers, GroupByLastName)
	require.Len(t, byLast, 3)
	assert.Equal(t, "#", byLast[0].Letter)
	assert.Equal(t, "A", byLast[1].Letter)
	assert.Equal(t, "L", byLast[2].Letter)
	assert.Equal(t, "Lara", byLast[2].Customers[0].LastName)
	assert.Equal(t, "lopez", byLast[2].Customers[1].LastName)

	byFirst := GroupCustomers(customers, GroupByFirstName)
	var letters []string
	for _, g := range byFirst {
		letters = append(letters, g.Letter)
	}
	assert.Equal(t, []string{"A", "B", "C", "Z"}, letters)

	assert.Empty(t, GroupCustomers(nil, ""))
}

func TestCampaignRepository_SeedStepHistory(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewCampaignRepository()

	cur, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, campaign.Default(), cur.Counter)

	again, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, cur.ID, again.ID, "seeding happens once")

	prev, err := repo.Step(ctx, campaign.Previous)
	require.NoError(t, err)
	assert.Equal(t, campaign.Counter{Year: 2024, Campaign: 30, LastCampaign: 30}, prev.Counter)

	next, err := repo.Step(ctx, campaign.Next)
	require.NoError(t, err)
	assert.Equal(t, campaign.Default(), next.Counter)

	history, err := repo.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, next.ID, history[0].ID)
	assert.Equal(t, cur.ID, history[2].ID)

	limited, err := repo.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCampaignRepository_Set(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewCampaignRepository()

	_, err := repo.Set(ctx, campaign.Counter{Year: 2026, Campaign: 27, LastCampaign: 26})
	assert.ErrorIs(t, err, campaign.ErrInvalidCounter)

	s, err := repo.Set(ctx, campaign.Counter{Year: 2026, Campaign: 20, LastCampaign: 26})
	require.NoError(t, err)
	assert.Equal(t, 20, s.Campaign)

	lowered, err := repo.SetLastCampaign(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, campaign.Counter{Year: 2026, Campaign: 20, LastCampaign: 10}, lowered.Counter)

	prev, err := repo.Step(ctx, campaign.Previous)
	require.NoError(t, err)
	assert.Equal(t, 10, prev.Campaign)

	_, err = repo.SetLastCampaign(ctx, 0)
	assert.ErrorIs(t, err, campaign.ErrInvalidCounter)
}

func TestRepresentativeRepository(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewRepresentativeRepository()

	rep, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ambassador Name", rep.Name)

	_, err = repo.Save(ctx, &models.Representative{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Save(ctx, &models.Representative{Name: "First"})
	require.NoError(t, err)
	saved, err := repo.Save(ctx, &models.Representative{Name: "Maria", Phone: "555-0199", LogoPath: "/tmp/logo.png"})
	require.NoError(t, err)

	rep, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, rep.ID)
	assert.Equal(t, "Maria", rep.Name)
	assert.Equal(t, "/tmp/logo.png", rep.LogoPath)
}

func TestOrderRepository_CreateStoresWhatWasPriced(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewOrderRepository(pricing.Default(), nil)
	c := createCustomer(t, ctx, "Ana", "Lopez")

	created, err := repo.Create(ctx, c.ID, &models.CreateOrderRequest{
		CampaignYear: 2025, CampaignNumber: 4,
		Lines: []models.OrderLineRequest{
			line("3", "0.333", "", false), // sub-cent price, skipped
			line("3", "9.99", "15", true), // 25.4745 * 1.09386 = 27.8656 -> 27.87
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, created.Skipped)
	require.Len(t, created.Lines, 1)
	assert.Equal(t, int64(999), created.Lines[0].UnitPrice)
	assert.Equal(t, int64(2787), created.Lines[0].TotalPrice)
	assert.Equal(t, int64(2787), created.OrderTotal)
}

func TestOrderRepository_CreateDefaults(t *testing.T) {
	ctx := setupTestDB(t)
	campaigns := NewCampaignRepository()
	repo := NewOrderRepository(pricing.Default(), campaigns)
	c := createCustomer(t, ctx, "Ana", "Lopez")

	_, err := campaigns.Set(ctx, campaign.Counter{Year: 2025, Campaign: 4, LastCampaign: 26})
	require.NoError(t, err)

	first, err := repo.Create(ctx, c.ID, &models.CreateOrderRequest{
		Payment: "5.00",
		Lines: []models.OrderLineRequest{
			line("2", "$10.00", "", true), // 20.00 * 1.09386 = 21.8772 -> 21.88
			line("1", "5", "10", false),   // 4.50
			line("x", "5", "", false),     // skipped
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2025, first.CampaignYear)
	assert.Equal(t, 4, first.CampaignNumber)
	assert.Equal(t, int64(2638), first.OrderTotal)
	assert.Equal(t, int64(0), first.PreviousBalance)
	assert.Equal(t, int64(500), first.Payment)
	assert.Equal(t, int64(2138), first.NetDue)
	assert.Equal(t, []int{2}, first.Skipped)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, int64(2188), first.Lines[0].TotalPrice)
	assert.True(t, first.Lines[0].Tax)
	assert.Equal(t, "10", first.Lines[1].DiscountPercent)
	assert.Equal(t, "26.38", first.Totals.GrandTotal.StringFixed(2))

	second, err := repo.Create(ctx, c.ID, &models.CreateOrderRequest{
		CampaignYear: 2025, CampaignNumber: 5,
		Lines: []models.OrderLineRequest{line("1", "1.00", "", false)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2138), second.PreviousBalance, "previous balance carries the last net due")
	assert.Equal(t, int64(2238), second.NetDue)

	explicit := pricing.Cell("0")
	third, err := repo.Create(ctx, c.ID, &models.CreateOrderRequest{
		CampaignYear: 2025, CampaignNumber: 6, PreviousBalance: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), third.NetDue)

	summary, err := NewCustomerRepository().Summary(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, third.ID, summary.LatestOrder.OrderID)

	list, err := repo.ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 6, list[0].CampaignNumber)
	assert.Equal(t, 4, list[2].CampaignNumber)
}

func TestOrderRepository_Errors(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewOrderRepository(nil, NewCampaignRepository())

	_, err := repo.Create(ctx, 99, &models.CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	c := createCustomer(t, ctx, "Ana", "Lopez")
	_, err = repo.Create(ctx, c.ID, &models.CreateOrderRequest{Payment: "abc"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.ReplaceLines(ctx, 99, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.RecordPayment(ctx, 99, 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = repo.RecordPayment(ctx, 99, -1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, repo.Delete(ctx, 99), ErrOrderNotFound)
}

func TestOrderRepository_EditPayDelete(t *testing.T) {
	ctx := setupTestDB(t)
	repo := NewOrderRepository(pricing.Default(), NewCampaignRepository())
	c := createCustomer(t, ctx, "Ana", "Lopez")
	balance := pricing.Cell("$3.00")

	created, err := repo.Create(ctx, c.ID, &models.CreateOrderRequest{
		PreviousBalance: &balance,
		Lines:           []models.OrderLineRequest{line("1", "10", "", false)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1300), created.NetDue)

	replaced, err := repo.ReplaceLines(ctx, created.ID, []models.OrderLineRequest{
		line("3", "1.10", "", false),
		line("1", "2", "", false),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(530), replaced.OrderTotal)
	assert.Equal(t, int64(830), replaced.NetDue)
	assert.Len(t, replaced.Lines, 2)

	paid, err := repo.RecordPayment(ctx, created.ID, 830)
	require.NoError(t, err)
	assert.Equal(t, int64(0), paid.NetDue)
	assert.Equal(t, int64(830), paid.Payment)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	var orphans int
	require.NoError(t, db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_products`).Scan(&orphans))
	assert.Zero(t, orphans)
}
