package service

import "context"

// RemoteFile is a file stored in the backup folder
type RemoteFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"`
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	UploadFile(ctx context.Context, localPath, folderID string) (string, error)
	ListFiles(ctx context.Context, folderID string) ([]RemoteFile, error)
}
