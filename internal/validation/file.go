package validation

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// PhotoConstraints defines validation rules for registrant photo uploads
type PhotoConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var ImageConstraints = PhotoConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		"":      true, // no extension defaults to .jpg at storage time
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidatePhoto checks size, extension and the actual content type
// detected from the first bytes (magic numbers), so a renamed file
// cannot sneak past the extension check.
func ValidatePhoto(content []byte, filename string) error {
	return validateAgainst(content, filename, ImageConstraints)
}

func validateAgainst(content []byte, filename string, constraints PhotoConstraints) error {
	if int64(len(content)) > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	if len(content) == 0 {
		return fmt.Errorf("file is empty")
	}

	detectedType := http.DetectContentType(content)
	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}

	return nil
}
