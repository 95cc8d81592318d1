// Package barcode renders Code 128 labels for phone units. The image is
// scaled to the shop's fixed label footprint so it can be printed and stuck
// on the box without further processing.
package barcode

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Label footprint: 4.4cm x 2.5cm at 96 DPI.
const (
	labelWidthPx  = 166
	labelHeightPx = 94
)

// Renderer persists a barcode image for a digit string and retrieves it by
// the same key later.
type Renderer interface {
	Render(phoneNumber string) (string, error)
	Path(phoneNumber string) string
}

// FileRenderer writes Code 128 PNG labels under a fixed directory, one file
// per phone number.
type FileRenderer struct {
	Dir string
}

// NewFileRenderer creates the target directory if needed.
func NewFileRenderer(dir string) (*FileRenderer, error) {
	if dir == "" {
		return nil, fmt.Errorf("barcode: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("barcode: create dir: %w", err)
	}
	return &FileRenderer{Dir: dir}, nil
}

// Render encodes the phone number as Code 128, scales it to the label
// footprint, and writes it to disk. Rendering the same number twice
// overwrites the previous file with identical content.
func (r *FileRenderer) Render(phoneNumber string) (string, error) {
	code, err := code128.Encode(phoneNumber)
	if err != nil {
		return "", fmt.Errorf("barcode: encode %q: %w", phoneNumber, err)
	}
	scaled, err := barcode.Scale(code, labelWidthPx, labelHeightPx)
	if err != nil {
		return "", fmt.Errorf("barcode: scale: %w", err)
	}

	path := r.Path(phoneNumber)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("barcode: create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, scaled); err != nil {
		return "", fmt.Errorf("barcode: encode png: %w", err)
	}
	return path, nil
}

// Path returns the deterministic file location for a phone number.
func (r *FileRenderer) Path(phoneNumber string) string {
	return filepath.Join(r.Dir, phoneNumber+".png")
}
