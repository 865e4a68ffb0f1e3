package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"avon-hello/campaign"
	"avon-hello/db"
	"avon-hello/logger"
	"avon-hello/models"
)

// CampaignRepository keeps the campaign settings as an append-only log.
// The newest row is the current campaign.
type CampaignRepository struct {
	// serializes read-advance-append so two steps never read the same row
	mu sync.Mutex
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

// Ensure CampaignRepository implements CampaignRepositoryInterface
var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)

// Current returns the newest settings row, seeding the defaults when the log is empty
func (r *CampaignRepository) Current(ctx context.Context) (*models.CampaignSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current(ctx)
}

func (r *CampaignRepository) current(ctx context.Context) (*models.CampaignSettings, error) {
	query := `
		SELECT id, year, campaign, last_campaign, created_at
		FROM campaign_settings
		ORDER BY id DESC
		LIMIT 1
	`
	var s models.CampaignSettings
	err := db.DB.QueryRowContext(ctx, query).Scan(&s.ID, &s.Year, &s.Campaign, &s.LastCampaign, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Info("🌱 CampaignSettings: No settings saved, seeding defaults")
		return r.appendRow(ctx, campaign.Default())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign settings: %w", err)
	}
	return &s, nil
}

// Step moves the current campaign one step in dir and records the result
func (r *CampaignRepository) Step(ctx context.Context, dir campaign.Direction) (*models.CampaignSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	next, err := campaign.Advance(cur.Counter, dir)
	if err != nil {
		return nil, err
	}

	logger.Info("📆 CampaignSettings: Step",
		zap.Stringer("direction", dir),
		zap.Int("fromYear", cur.Year), zap.Int("fromCampaign", cur.Campaign),
		zap.Int("toYear", next.Year), zap.Int("toCampaign", next.Campaign))
	return r.appendRow(ctx, next)
}

// Set records c as the current campaign
func (r *CampaignRepository) Set(ctx context.Context, c campaign.Counter) (*models.CampaignSettings, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendRow(ctx, c)
}

// SetLastCampaign changes the number of campaigns per year and keeps the current
// year and campaign. A campaign above the new last one is allowed; Previous clamps it.
func (r *CampaignRepository) SetLastCampaign(ctx context.Context, last int) (*models.CampaignSettings, error) {
	if last < 1 {
		return nil, fmt.Errorf("%w: last campaign %d must be at least 1", campaign.ErrInvalidCounter, last)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	c := cur.Counter
	c.LastCampaign = last
	return r.appendRow(ctx, c)
}

// History returns up to limit settings rows, newest first. limit <= 0 returns all rows.
func (r *CampaignRepository) History(ctx context.Context, limit int) ([]models.CampaignSettings, error) {
	query := `SELECT id, year, campaign, last_campaign, created_at FROM campaign_settings ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.DB.QueryContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign history: %w", err)
	}
	defer rows.Close()

	history := []models.CampaignSettings{}
	for rows.Next() {
		var s models.CampaignSettings
		if err := rows.Scan(&s.ID, &s.Year, &s.Campaign, &s.LastCampaign, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign settings: %w", err)
		}
		history = append(history, s)
	}
	return history, rows.Err()
}

func (r *CampaignRepository) appendRow(ctx context.Context, c campaign.Counter) (*models.CampaignSettings, error) {
	query := `
		INSERT INTO campaign_settings (year, campaign, last_campaign, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	s := models.CampaignSettings{Counter: c, CreatedAt: time.Now().UTC().Format(time.RFC3339Nano)}
	err := db.DB.QueryRowContext(ctx, db.Rebind(query), c.Year, c.Campaign, c.LastCampaign, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		logger.Error("❌ CampaignSettings: Error saving settings", zap.Error(err))
		return nil, fmt.Errorf("failed to save campaign settings: %w", err)
	}
	return &s, nil
}
