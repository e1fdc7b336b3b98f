package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// fileKeyRegex matches Figma file keys: URL-safe alphanumerics.
var fileKeyRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateFileKey validates a Figma file key before it is placed in a URL.
//
// Rules:
//   - No empty keys
//   - Alphanumeric only (keys are base62 identifiers)
//   - Maximum length of 128 characters
func ValidateFileKey(key string) error {
	if key == "" {
		return New(ErrCodeConfiguration, "file key cannot be empty")
	}
	if len(key) > 128 {
		return New(ErrCodeInvalidInput, "file key too long (max 128 characters)")
	}
	if !fileKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid file key: %q", key)
	}
	return nil
}

// ValidateOutputName validates the base name of a tier document.
// It must be a simple name without path components, since it is joined onto
// the output directory.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "output name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "output name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators: %q", name)
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
