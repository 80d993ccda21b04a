package errors

import (
	"unicode"
)

// ValidateCityCode validates a city code for safety and correctness.
// Codes are the short identifiers used in fare rows and configuration
// (e.g. "NYC", "TYO"). The rules are intentionally conservative:
//   - No empty codes
//   - 2 to 4 characters
//   - ASCII letters only
//
// Codes are matched case-insensitively elsewhere; validation accepts any
// casing and leaves normalization to the caller.
func ValidateCityCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidCity, "city code cannot be empty")
	}

	if len(code) < 2 || len(code) > 4 {
		return New(ErrCodeInvalidCity, "city code %q must be 2-4 characters", code)
	}

	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return New(ErrCodeInvalidCity, "city code %q contains invalid characters", code)
		}
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
