package service

import (
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"avon-hello/logger"
)

// FileOpener hands a file to the desktop's default application
type FileOpener func(path string) error

// openCommand returns the command that opens path with the OS default viewer
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		// the empty argument is the window title
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenFile opens path with the default viewer and returns without waiting for it
func OpenFile(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if err := exec.Command(name, args...).Start(); err != nil {
		logger.Error("❌ OpenFile: Failed to open file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	logger.Info("🖨️ OpenFile: Opened file", zap.String("path", path))
	return nil
}
