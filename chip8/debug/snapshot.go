package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot saves frame to the working directory, logging failures.
func TakeSnapshot(frame video.Snapshot, palette video.Palette) {
	if err := SaveFramePNGToDir(frame, "chip8_snapshot", "", palette); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage renders frame at 1:1 scale with the given palette.
func FrameImage(frame video.Snapshot, palette video.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			img.SetRGBA(x, y, palette.Color(frame.Pixel(x, y)))
		}
	}
	return img
}

// SaveFramePNGToDir saves frame as a timestamped PNG in directory, or in the
// working directory when directory is empty.
func SaveFramePNGToDir(frame video.Snapshot, baseName, directory string, palette video.Palette) error {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", baseName, timestamp))

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, FrameImage(frame, palette)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", video.FramebufferWidth, video.FramebufferHeight), "format", "PNG")
	return nil
}
