package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"avon-hello/logger"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// UploadFile uploads a local file into a Drive folder and returns the new file id
func (ds *DriveService) UploadFile(ctx context.Context, localPath, folderID string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:    filepath.Base(localPath),
		Parents: []string{folderID},
	}
	created, err := ds.client.Files.Create(meta).
		Media(f).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", meta.Name, err)
	}

	logger.Info("☁️ UploadFile: Uploaded to Drive", zap.String("name", created.Name), zap.String("id", created.Id))
	return created.Id, nil
}

// ListFiles lists the files in a Drive folder, newest first
func (ds *DriveService) ListFiles(ctx context.Context, folderID string) ([]RemoteFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var files []RemoteFile
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			OrderBy("createdTime desc").
			Fields("nextPageToken, files(id, name, size, createdTime)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, file := range r.Files {
			files = append(files, RemoteFile{
				ID:        file.Id,
				Name:      file.Name,
				Size:      file.Size,
				CreatedAt: file.CreatedTime,
			})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}
