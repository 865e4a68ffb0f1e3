package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"avon-hello/db"
	"avon-hello/logger"
)

var (
	// ErrBackupNotConfigured is returned when no Drive credentials or folder are set
	ErrBackupNotConfigured = errors.New("backup is not configured")
	// ErrBackupUnsupported is returned when the database is not a local file
	ErrBackupUnsupported = errors.New("backup is only available for the embedded database")
)

// BackupResult summarizes one backup run
type BackupResult struct {
	DatabaseFileID   string   `json:"databaseFileId"`
	DatabaseFileName string   `json:"databaseFileName"`
	InvoicesTotal    int      `json:"invoicesTotal"`
	InvoicesUploaded int      `json:"invoicesUploaded"`
	InvoicesSkipped  int      `json:"invoicesSkipped"`
	Errors           []string `json:"errors"`
}

// BackupService copies the database and saved invoices to a Google Drive folder
type BackupService struct {
	driveService DriveServiceInterface
	folderID     string
	snapshotDir  string
	invoiceDir   string
}

// NewBackupService creates a new BackupService. A nil driveService or empty
// folderID leaves backups disabled.
func NewBackupService(driveService DriveServiceInterface, folderID, snapshotDir, invoiceDir string) *BackupService {
	return &BackupService{
		driveService: driveService,
		folderID:     folderID,
		snapshotDir:  snapshotDir,
		invoiceDir:   invoiceDir,
	}
}

// Ensure BackupService implements BackupServiceInterface
var _ BackupServiceInterface = (*BackupService)(nil)

func (s *BackupService) configured() error {
	if s.driveService == nil || s.folderID == "" {
		return ErrBackupNotConfigured
	}
	return nil
}

// Run snapshots the database, uploads it, then uploads every invoice not yet in the folder.
// Invoice failures are collected in the result; a failed database upload aborts the run.
func (s *BackupService) Run(ctx context.Context) (*BackupResult, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	if db.Driver != db.DriverSQLite {
		return nil, ErrBackupUnsupported
	}

	logger.Info("📥 Backup: Starting backup", zap.String("folderId", s.folderID))

	if err := os.MkdirAll(s.snapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	name := fmt.Sprintf("avon-hello-%s.db", time.Now().UTC().Format("20060102-150405"))
	snapshot := filepath.Join(s.snapshotDir, name)
	if err := db.Snapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	defer os.Remove(snapshot)

	fileID, err := s.driveService.UploadFile(ctx, snapshot, s.folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload database: %w", err)
	}
	result := &BackupResult{DatabaseFileID: fileID, DatabaseFileName: name, Errors: []string{}}

	if err := s.uploadInvoices(ctx, result); err != nil {
		return nil, err
	}

	logger.Info("🎉 Backup: Completed",
		zap.Int("invoicesUploaded", result.InvoicesUploaded),
		zap.Int("invoicesSkipped", result.InvoicesSkipped),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

func (s *BackupService) uploadInvoices(ctx context.Context, result *BackupResult) error {
	entries, err := os.ReadDir(s.invoiceDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read invoice directory: %w", err)
	}

	remote, err := s.driveService.ListFiles(ctx, s.folderID)
	if err != nil {
		return fmt.Errorf("failed to list backup folder: %w", err)
	}
	uploaded := make(map[string]bool, len(remote))
	for _, f := range remote {
		uploaded[f.Name] = true
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		result.InvoicesTotal++

		if uploaded[entry.Name()] {
			logger.Debug("⏭️ Backup: Skipping invoice already in Drive", zap.String("name", entry.Name()))
			result.InvoicesSkipped++
			continue
		}

		if _, err := s.driveService.UploadFile(ctx, filepath.Join(s.invoiceDir, entry.Name()), s.folderID); err != nil {
			msg := fmt.Sprintf("Failed to upload invoice %s: %v", entry.Name(), err)
			logger.Error("❌ Backup: "+msg)
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.InvoicesUploaded++
	}
	return nil
}

// List returns the files in the backup folder, newest first
func (s *BackupService) List(ctx context.Context) ([]RemoteFile, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	return s.driveService.ListFiles(ctx, s.folderID)
}
