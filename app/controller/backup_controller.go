package controller

import (
	"net/http"

	"avon-hello/service"
)

// BackupController handles HTTP requests for Drive backups
type BackupController struct {
	backupService service.BackupServiceInterface
}

// NewBackupController creates a new BackupController
func NewBackupController(backupService service.BackupServiceInterface) *BackupController {
	return &BackupController{backupService: backupService}
}

// Run handles POST /admin/backup
// Example response:
// {"databaseFileId": "1AbC...", "databaseFileName": "avon-hello-20250128-150405.db",
// "invoicesTotal": 12, "invoicesUploaded": 2, "invoicesSkipped": 10, "errors": []}
func (c *BackupController) Run(w http.ResponseWriter, r *http.Request) {
	result, err := c.backupService.Run(r.Context())
	if err != nil {
		writeError(w, "Backup", err)
		return
	}
	writeJSON(w, "Backup", http.StatusOK, result)
}

// List handles GET /admin/backup
func (c *BackupController) List(w http.ResponseWriter, r *http.Request) {
	files, err := c.backupService.List(r.Context())
	if err != nil {
		writeError(w, "ListBackups", err)
		return
	}
	writeJSON(w, "ListBackups", http.StatusOK, files)
}
