// Package capture writes rendered frames to PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer saves frames into an output directory.
type Writer struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewWriter creates a writer. prefix names timestamped files.
func NewWriter(outputDir, prefix string) *Writer {
	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (w *Writer) SetOutputDir(dir string) {
	w.outputDir = dir
}

// FromPixels builds an image from raw RGBA pixel data with the bottom row
// first, as returned by glReadPixels.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y // Flip Y
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride

		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// SavePixels writes raw GL pixels to name inside the output directory.
// An empty name selects a timestamped file name.
func (w *Writer) SavePixels(pixels []byte, width, height int, name string) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.SaveImage(img, name)
}

// SaveImage writes img as PNG and returns the file path.
func (w *Writer) SaveImage(img image.Image, name string) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	if name == "" {
		name = w.GenerateFilename()
	}
	path := name
	if w.outputDir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(w.outputDir, name)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return path, nil
}

// GenerateFilename returns a timestamped file name without a directory.
func (w *Writer) GenerateFilename() string {
	timestamp := w.now().Format("2006-01-02_15-04-05")
	return fmt.Sprintf("%s_%s.png", w.prefix, timestamp)
}
