package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"avon-hello/db"
	"avon-hello/logger"
	"avon-hello/models"
	"avon-hello/pricing"
	"avon-hello/utils"
)

// OrderRepository handles database operations for orders and their lines.
// Totals are always recomputed by the pricing engine, never taken from the client.
type OrderRepository struct {
	engine    *pricing.Engine
	campaigns CampaignRepositoryInterface
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(engine *pricing.Engine, campaigns CampaignRepositoryInterface) *OrderRepository {
	if engine == nil {
		engine = pricing.Default()
	}
	return &OrderRepository{engine: engine, campaigns: campaigns}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const orderColumns = `order_id, customer_id, campaign_year, campaign_number, order_total,
	previous_balance, payment, net_due, time_submitted, last_edited`

// pricedLine is a valid line ready to be stored
type pricedLine struct {
	req   models.OrderLineRequest
	in    pricing.LineInput
	total int64
}

func (r *OrderRepository) price(lines []models.OrderLineRequest) (pricing.OrderTotals, []pricedLine) {
	raw := make([]pricing.RawLine, len(lines))
	for i, l := range lines {
		raw[i] = l.RawLine
	}
	totals := r.engine.Totals(raw)

	skipped := make(map[int]bool, len(totals.Skipped))
	for _, i := range totals.Skipped {
		skipped[i] = true
	}

	priced := make([]pricedLine, 0, len(lines))
	for i, l := range lines {
		if skipped[i] {
			continue
		}
		lp := totals.Lines[i]
		priced = append(priced, pricedLine{req: l, in: lp.Input, total: utils.ToCents(lp.Total)})
	}
	return totals, priced
}

// Create prices the lines and stores the order with them in one transaction
func (r *OrderRepository) Create(ctx context.Context, customerID int64, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	logger.Info("📥 CreateOrder: Starting order creation",
		zap.Int64("customerId", customerID), zap.Int("lines", len(req.Lines)))

	var exists int
	err := db.DB.QueryRowContext(ctx, db.Rebind(`SELECT COUNT(*) FROM customers WHERE customer_id = ?`), customerID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, customerID)
	}

	year, number := req.CampaignYear, req.CampaignNumber
	if year == 0 || number == 0 {
		if r.campaigns == nil {
			return nil, fmt.Errorf("%w: campaign year and number are required", ErrValidation)
		}
		cur, err := r.campaigns.Current(ctx)
		if err != nil {
			return nil, err
		}
		if year == 0 {
			year = cur.Year
		}
		if number == 0 {
			number = cur.Campaign
		}
	}

	var previousBalance int64
	if req.PreviousBalance != nil {
		d, err := utils.ParseMoney(string(*req.PreviousBalance))
		if err != nil {
			return nil, fmt.Errorf("%w: previous balance: %v", ErrValidation, err)
		}
		previousBalance = utils.ToCents(d)
	} else {
		latest, err := latestOrder(ctx, db.DB, customerID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			previousBalance = latest.NetDue
		}
	}

	paymentAmount, err := utils.ParseMoney(string(req.Payment))
	if err != nil {
		return nil, fmt.Errorf("%w: payment: %v", ErrValidation, err)
	}
	payment := utils.ToCents(paymentAmount)

	totals, priced := r.price(req.Lines)
	orderTotal := utils.ToCents(totals.GrandTotal)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_id, campaign_year, campaign_number, order_total,
			previous_balance, payment, net_due, time_submitted, last_edited)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING order_id
	`
	var orderID int64
	err = tx.QueryRowContext(ctx, db.Rebind(query),
		customerID, year, number, orderTotal,
		previousBalance, payment, orderTotal+previousBalance-payment, now, now,
	).Scan(&orderID)
	if err != nil {
		logger.Error("❌ CreateOrder: Error inserting order", zap.Error(err))
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertLines(ctx, tx, orderID, priced); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("✅ CreateOrder: Order created",
		zap.Int64("orderId", orderID),
		zap.Int64("orderTotal", orderTotal),
		zap.Ints("skipped", totals.Skipped))
	return r.response(ctx, orderID, totals)
}

// GetByID returns an order with its lines
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = ?`
	var o models.Order
	err := db.DB.QueryRowContext(ctx, db.Rebind(query), id).Scan(&o.ID, &o.CustomerID, &o.CampaignYear,
		&o.CampaignNumber, &o.OrderTotal, &o.PreviousBalance, &o.Payment, &o.NetDue, &o.TimeSubmitted, &o.LastEdited)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *OrderRepository) lines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	query := `
		SELECT id, order_id, product_number, page, description, shade, size, qty,
		       unit_price, reg_price, tax, processing, discount, total_price
		FROM order_products
		WHERE order_id = ?
		ORDER BY id
	`
	rows, err := db.DB.QueryContext(ctx, db.Rebind(query), orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		var tax, processing int
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductNumber, &l.Page, &l.Description, &l.Shade, &l.Size,
			&l.Qty, &l.UnitPrice, &l.RegPrice, &tax, &processing, &l.DiscountPercent, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		l.Tax, l.Processing = tax != 0, processing != 0
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListByCustomer returns the order headers of a customer, newest campaign first
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.OrderSummary, error) {
	query := `
		SELECT order_id, campaign_year, campaign_number, order_total, previous_balance, payment, net_due
		FROM orders
		WHERE customer_id = ?
		ORDER BY campaign_year DESC, campaign_number DESC, order_id DESC
	`
	rows, err := db.DB.QueryContext(ctx, db.Rebind(query), customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	summaries := []models.OrderSummary{}
	for rows.Next() {
		var s models.OrderSummary
		if err := rows.Scan(&s.OrderID, &s.CampaignYear, &s.CampaignNumber, &s.OrderTotal,
			&s.PreviousBalance, &s.Payment, &s.NetDue); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ReplaceLines swaps every line of an order for the given ones and recomputes its totals
func (r *OrderRepository) ReplaceLines(ctx context.Context, id int64, lines []models.OrderLineRequest) (*models.OrderResponse, error) {
	totals, priced := r.price(lines)
	orderTotal := utils.ToCents(totals.GrandTotal)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE orders
		SET order_total = ?, net_due = ? + previous_balance - payment, last_edited = ?
		WHERE order_id = ?
	`
	res, err := tx.ExecContext(ctx, db.Rebind(query), orderTotal, orderTotal, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM order_products WHERE order_id = ?`), id); err != nil {
		return nil, fmt.Errorf("failed to delete order lines: %w", err)
	}
	if err := insertLines(ctx, tx, id, priced); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("✅ ReplaceLines: Order lines replaced",
		zap.Int64("orderId", id), zap.Int("lines", len(priced)), zap.Int64("orderTotal", orderTotal))
	return r.response(ctx, id, totals)
}

// RecordPayment sets the payment of an order and recomputes its net due
func (r *OrderRepository) RecordPayment(ctx context.Context, id int64, amountCents int64) (*models.Order, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: payment must not be negative", ErrValidation)
	}

	query := `
		UPDATE orders
		SET payment = ?, net_due = order_total + previous_balance - ?, last_edited = ?
		WHERE order_id = ?
	`
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.DB.ExecContext(ctx, db.Rebind(query), amountCents, amountCents, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
	}

	logger.Info("💵 RecordPayment: Payment recorded", zap.Int64("orderId", id), zap.Int64("amount", amountCents))
	return r.GetByID(ctx, id)
}

// Delete removes an order and its lines
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM order_products WHERE order_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}
	res, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM orders WHERE order_id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", ErrOrderNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Info("🗑️ DeleteOrder: Order deleted", zap.Int64("orderId", id))
	return nil
}

func (r *OrderRepository) response(ctx context.Context, id int64, totals pricing.OrderTotals) (*models.OrderResponse, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OrderResponse{Order: *o, Totals: totals, Skipped: totals.Skipped}, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID int64, lines []pricedLine) error {
	query := db.Rebind(`
		INSERT INTO order_products (order_id, product_number, page, description, shade, size, qty,
			unit_price, reg_price, tax, processing, discount, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for i, l := range lines {
		_, err := tx.ExecContext(ctx, query,
			orderID, l.req.ProductNumber, l.req.Page, l.req.Description, l.req.Shade, l.req.Size, l.in.Qty,
			utils.ToCents(l.in.UnitPrice), utils.ToCents(l.in.RegPrice), boolInt(l.in.TaxApplied),
			boolInt(l.in.ProcessingApplied), l.in.DiscountPercent.String(), l.total,
		)
		if err != nil {
			logger.Error("❌ insertLines: Error inserting order line", zap.Int("line", i), zap.Error(err))
			return fmt.Errorf("failed to insert order line %d: %w", i, err)
		}
	}
	return nil
}

// latestOrder returns the newest order of a customer, or nil when they have none
func latestOrder(ctx context.Context, q queryRower, customerID int64) (*models.OrderSummary, error) {
	query := `
		SELECT order_id, campaign_year, campaign_number, order_total, previous_balance, payment, net_due
		FROM orders
		WHERE customer_id = ?
		ORDER BY campaign_year DESC, campaign_number DESC, order_id DESC
		LIMIT 1
	`
	var s models.OrderSummary
	err := q.QueryRowContext(ctx, db.Rebind(query), customerID).Scan(&s.OrderID, &s.CampaignYear,
		&s.CampaignNumber, &s.OrderTotal, &s.PreviousBalance, &s.Payment, &s.NetDue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest order: %w", err)
	}
	return &s, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
