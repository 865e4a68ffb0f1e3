package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"avon-hello/logger"
)

const logoQuality = 85

// OptimizeLogo reads an image file and returns it as JPEG bytes no larger than
// maxDim on either side. Transparent areas are flattened onto white.
func OptimizeLogo(path string, maxDim int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	return OptimizeImage(data, maxDim)
}

// OptimizeImage converts raw image bytes (PNG, JPEG, etc.) to a resized JPEG
func OptimizeImage(imageData []byte, maxDim int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	logger.Debug("📸 Image decoded", zap.String("format", format), zap.Stringer("bounds", img.Bounds()))

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		// keep aspect ratio
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}
		logger.Debug("🔄 Resizing image",
			zap.Int("width", width), zap.Int("height", height),
			zap.Int("newWidth", newWidth), zap.Int("newHeight", newHeight))
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	background := imaging.New(resized.Bounds().Dx(), resized.Bounds().Dy(), image.White)
	flat := imaging.Overlay(background, resized, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: logoQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
