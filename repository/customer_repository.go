package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"avon-hello/db"
	"avon-hello/logger"
	"avon-hello/models"
)

// Customer list grouping
const (
	GroupByFirstName = "first"
	GroupByLastName  = "last"
)

const customerColumns = `customer_id, first_name, last_name, address, city, state, zip_code,
	office_phone, cell_phone, email, status, created_at`

// CustomerRepository handles database operations for customers
type CustomerRepository struct{}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

func normalizeCustomerRequest(req *models.CustomerRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	switch req.Status {
	case "":
		req.Status = models.CustomerStatusActive
	case models.CustomerStatusActive, models.CustomerStatusClosed, models.CustomerStatusDeleted:
	default:
		return fmt.Errorf("%w: status must be Active, Closed or Deleted", ErrValidation)
	}
	return nil
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	if err := normalizeCustomerRequest(req); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO customers (first_name, last_name, address, city, state, zip_code,
			office_phone, cell_phone, email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING customer_id
	`
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var id int64
	err := db.DB.QueryRowContext(ctx, db.Rebind(query),
		req.FirstName, req.LastName, req.Address, req.City, req.State, req.ZipCode,
		req.OfficePhone, req.CellPhone, req.Email, req.Status, createdAt,
	).Scan(&id)
	if err != nil {
		logger.Error("❌ CreateCustomer: Error inserting customer", zap.Error(err))
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	logger.Info("✅ CreateCustomer: Created customer", zap.Int64("id", id))
	return r.GetByID(ctx, id)
}

// GetByID returns the customer with id
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ?`
	c, err := scanCustomer(db.DB.QueryRowContext(ctx, db.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return c, nil
}

// Update overwrites the editable fields of a customer
func (r *CustomerRepository) Update(ctx context.Context, id int64, req *models.CustomerRequest) (*models.Customer, error) {
	if err := normalizeCustomerRequest(req); err != nil {
		return nil, err
	}

	query := `
		UPDATE customers
		SET first_name = ?, last_name = ?, address = ?, city = ?, state = ?, zip_code = ?,
		    office_phone = ?, cell_phone = ?, email = ?, status = ?
		WHERE customer_id = ?
	`
	res, err := db.DB.ExecContext(ctx, db.Rebind(query),
		req.FirstName, req.LastName, req.Address, req.City, req.State, req.ZipCode,
		req.OfficePhone, req.CellPhone, req.Email, req.Status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, id)
	}

	logger.Info("✅ UpdateCustomer: Updated customer", zap.Int64("id", id))
	return r.GetByID(ctx, id)
}

// Search returns customers whose first and last names start with the given
// prefixes, ignoring case. Empty prefixes match everything.
func (r *CustomerRepository) Search(ctx context.Context, firstName, lastName string) ([]models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE LOWER(first_name) LIKE ? ESCAPE '\' AND LOWER(last_name) LIKE ? ESCAPE '\'
		ORDER BY last_name, first_name, customer_id
	`
	return r.query(ctx, query, likePrefix(firstName), likePrefix(lastName))
}

// ListGrouped returns every customer grouped by the initial of the first or last name
func (r *CustomerRepository) ListGrouped(ctx context.Context, groupBy string) ([]models.CustomerGroup, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY customer_id`
	customers, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}
	return GroupCustomers(customers, groupBy), nil
}

// Summary returns a customer with their latest order
func (r *CustomerRepository) Summary(ctx context.Context, id int64) (*models.CustomerSummary, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	latest, err := latestOrder(ctx, db.DB, id)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		latest = &models.OrderSummary{}
	}
	return &models.CustomerSummary{Customer: *c, LatestOrder: latest}, nil
}

func (r *CustomerRepository) query(ctx context.Context, query string, args ...any) ([]models.Customer, error) {
	rows, err := db.DB.QueryContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Address, &c.City, &c.State, &c.ZipCode,
		&c.OfficePhone, &c.CellPhone, &c.Email, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func likePrefix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return s + "%"
}

// GroupCustomers groups customers by the upper-cased initial of the chosen name,
// letters sorted, customers sorted by that name within a letter.
// Names that do not start with a letter go under "#".
func GroupCustomers(customers []models.Customer, groupBy string) []models.CustomerGroup {
	key := func(c models.Customer) string {
		if groupBy == GroupByFirstName {
			return c.FirstName
		}
		return c.LastName
	}

	byLetter := map[string][]models.Customer{}
	for _, c := range customers {
		letter := "#"
		if r, _ := utf8.DecodeRuneInString(key(c)); unicode.IsLetter(r) {
			letter = string(unicode.ToUpper(r))
		}
		byLetter[letter] = append(byLetter[letter], c)
	}

	groups := make([]models.CustomerGroup, 0, len(byLetter))
	for letter, list := range byLetter {
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(key(list[i])) < strings.ToLower(key(list[j]))
		})
		groups = append(groups, models.CustomerGroup{Letter: letter, Customers: list})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Letter < groups[j].Letter })
	return groups
}
