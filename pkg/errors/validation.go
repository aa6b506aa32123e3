package errors

import (
	"math"
	"strings"
	"unicode"
)

// Bounds for typesetting values. Sizes outside this range either vanish or
// produce pages no viewer can open.
const (
	MinFontSize = 1.0
	MaxFontSize = 500.0
	MaxScale    = 16.0
)

// ValidateFontSize checks that size is a finite value in [MinFontSize, MaxFontSize].
func ValidateFontSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return New(ErrCodeInvalidInput, "font size must be a finite number")
	}
	if size < MinFontSize || size > MaxFontSize {
		return New(ErrCodeInvalidInput, "font size %g out of range (%g-%g)", size, MinFontSize, MaxFontSize)
	}
	return nil
}

// ValidateScale checks that a raster scale factor is positive and at most MaxScale.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 {
		return New(ErrCodeInvalidInput, "scale must be positive")
	}
	if scale > MaxScale {
		return New(ErrCodeInvalidInput, "scale %g too large (max %g)", scale, MaxScale)
	}
	return nil
}

// ValidatePath validates a file path supplied on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.IndexFunc(path, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}
