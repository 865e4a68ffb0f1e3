package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"avon-hello/db"
	"avon-hello/logger"
	"avon-hello/models"
)

// RepresentativeRepository stores representative info. Saves append a row;
// the newest row wins.
type RepresentativeRepository struct{}

// NewRepresentativeRepository creates a new RepresentativeRepository
func NewRepresentativeRepository() *RepresentativeRepository {
	return &RepresentativeRepository{}
}

// Ensure RepresentativeRepository implements RepresentativeRepositoryInterface
var _ RepresentativeRepositoryInterface = (*RepresentativeRepository)(nil)

// Get returns the latest saved info, or the placeholder defaults when nothing is saved
func (r *RepresentativeRepository) Get(ctx context.Context) (*models.Representative, error) {
	query := `
		SELECT id, rep_name, rep_address, rep_phone, rep_email, rep_website,
		       rep_cell, rep_office, logo_path, created_at
		FROM representative_info
		ORDER BY id DESC
		LIMIT 1
	`
	var rep models.Representative
	err := db.DB.QueryRowContext(ctx, query).Scan(&rep.ID, &rep.Name, &rep.Address, &rep.Phone,
		&rep.Email, &rep.Website, &rep.CellPhone, &rep.OfficePhone, &rep.LogoPath, &rep.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		def := models.DefaultRepresentative()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch representative info: %w", err)
	}
	return &rep, nil
}

// Save records rep as the current representative info
func (r *RepresentativeRepository) Save(ctx context.Context, rep *models.Representative) (*models.Representative, error) {
	if strings.TrimSpace(rep.Name) == "" {
		return nil, fmt.Errorf("%w: representative name is required", ErrValidation)
	}

	query := `
		INSERT INTO representative_info (rep_name, rep_address, rep_phone, rep_email, rep_website,
			rep_cell, rep_office, logo_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	saved := *rep
	saved.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	err := db.DB.QueryRowContext(ctx, db.Rebind(query),
		saved.Name, saved.Address, saved.Phone, saved.Email, saved.Website,
		saved.CellPhone, saved.OfficePhone, saved.LogoPath, saved.CreatedAt,
	).Scan(&saved.ID)
	if err != nil {
		logger.Error("❌ SaveRepresentative: Error inserting row", zap.Error(err))
		return nil, fmt.Errorf("failed to save representative info: %w", err)
	}

	logger.Info("✅ SaveRepresentative: Saved representative info", zap.Int64("id", saved.ID))
	return &saved, nil
}
