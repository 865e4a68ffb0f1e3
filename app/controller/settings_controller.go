package controller

import (
	"net/http"

	"go.uber.org/zap"

	"avon-hello/config"
	"avon-hello/logger"
)

// SettingsController handles HTTP requests for the user settings file
type SettingsController struct {
	store *config.SettingsStore
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(store *config.SettingsStore) *SettingsController {
	return &SettingsController{store: store}
}

// Get handles GET /admin/settings
// Example response: {"appearance": {"darkMode": true}}
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "GetSettings", http.StatusOK, c.store.Get())
}

// Update handles PUT /admin/settings
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var req config.Settings
	if !decodeJSON(w, r, "UpdateSettings", &req) {
		return
	}
	if err := c.store.Save(req); err != nil {
		writeError(w, "UpdateSettings", err)
		return
	}
	logger.Info("✅ UpdateSettings: Settings saved", zap.Bool("darkMode", req.Appearance.DarkMode))
	writeJSON(w, "UpdateSettings", http.StatusOK, req)
}
