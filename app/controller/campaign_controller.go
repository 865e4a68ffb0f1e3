package controller

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"avon-hello/campaign"
	"avon-hello/logger"
	"avon-hello/models"
	"avon-hello/repository"
)

const defaultHistoryLimit = 50

// CampaignController handles HTTP requests for the campaign counter
type CampaignController struct {
	repository repository.CampaignRepositoryInterface
}

// NewCampaignController creates a new CampaignController
func NewCampaignController(repo repository.CampaignRepositoryInterface) *CampaignController {
	return &CampaignController{
		repository: repo,
	}
}

// Get handles GET /admin/campaign
// Example response: {"id": 12, "year": 2025, "campaign": 4, "lastCampaign": 26, "createdAt": "..."}
func (c *CampaignController) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := c.repository.Current(r.Context())
	if err != nil {
		writeError(w, "GetCampaign", err)
		return
	}
	writeJSON(w, "GetCampaign", http.StatusOK, settings)
}

// Next handles POST /admin/campaign/next
func (c *CampaignController) Next(w http.ResponseWriter, r *http.Request) {
	c.step(w, r, campaign.Next)
}

// Previous handles POST /admin/campaign/previous
func (c *CampaignController) Previous(w http.ResponseWriter, r *http.Request) {
	c.step(w, r, campaign.Previous)
}

func (c *CampaignController) step(w http.ResponseWriter, r *http.Request, dir campaign.Direction) {
	settings, err := c.repository.Step(r.Context(), dir)
	if err != nil {
		writeError(w, "StepCampaign", err)
		return
	}
	writeJSON(w, "StepCampaign", http.StatusOK, settings)
}

// Update handles PUT /admin/campaign
// Zero fields keep their current value. A request with only lastCampaign changes the
// number of campaigns per year without touching the current one.
func (c *CampaignController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CampaignUpdateRequest
	if !decodeJSON(w, r, "UpdateCampaign", &req) {
		return
	}

	var (
		settings *models.CampaignSettings
		err      error
	)
	if req.Year == 0 && req.Campaign == 0 && req.LastCampaign != 0 {
		settings, err = c.repository.SetLastCampaign(r.Context(), req.LastCampaign)
	} else {
		var cur *models.CampaignSettings
		if cur, err = c.repository.Current(r.Context()); err == nil {
			counter := cur.Counter
			if req.Year != 0 {
				counter.Year = req.Year
			}
			if req.Campaign != 0 {
				counter.Campaign = req.Campaign
			}
			if req.LastCampaign != 0 {
				counter.LastCampaign = req.LastCampaign
			}
			settings, err = c.repository.Set(r.Context(), counter)
		}
	}
	if err != nil {
		writeError(w, "UpdateCampaign", err)
		return
	}

	logger.Info("✅ UpdateCampaign: Campaign settings saved",
		zap.Int("year", settings.Year), zap.Int("campaign", settings.Campaign), zap.Int("lastCampaign", settings.LastCampaign))
	writeJSON(w, "UpdateCampaign", http.StatusOK, settings)
}

// History handles GET /admin/campaign/history?limit=20
func (c *CampaignController) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	history, err := c.repository.History(r.Context(), limit)
	if err != nil {
		writeError(w, "CampaignHistory", err)
		return
	}
	writeJSON(w, "CampaignHistory", http.StatusOK, history)
}
