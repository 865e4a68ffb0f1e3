package service

import "context"

// BackupServiceInterface defines the contract for backup operations
type BackupServiceInterface interface {
	Run(ctx context.Context) (*BackupResult, error)
	List(ctx context.Context) ([]RemoteFile, error)
}
