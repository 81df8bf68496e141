package errors

import (
	"strings"
	"unicode"
)

// MaxItems bounds the number of items a single scene may carry.
const MaxItems = 100_000

// MaxExtent bounds every size and spacing value of a scene, in layout units.
const MaxExtent = 1 << 16

// ValidateItemID validates an optional item identifier. IDs end up in SVG
// element ids and JSON keys, so they are kept short and printable.
func ValidateItemID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "item id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "item id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `<>&"'`) {
		return New(ErrCodeInvalidScene, "item id %q contains markup characters", id)
	}
	return nil
}

// ValidateNonNegative checks that a size or margin value is not negative.
// field names the offending value in the message (e.g. "item 3 width").
func ValidateNonNegative(field string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidScene, "%s must not be negative (got %d)", field, v)
	}
	return nil
}

// ValidateExtent checks that a size or spacing value lies in [0, MaxExtent].
func ValidateExtent(field string, v int) error {
	if err := ValidateNonNegative(field, v); err != nil {
		return err
	}
	if v > MaxExtent {
		return New(ErrCodeInvalidScene, "%s too large: %d (max %d)", field, v, MaxExtent)
	}
	return nil
}

// ValidateItemCount checks that a scene is within MaxItems.
func ValidateItemCount(n int) error {
	if n > MaxItems {
		return New(ErrCodeInvalidScene, "too many items: %d (max %d)", n, MaxItems)
	}
	return nil
}

// ValidatePath validates an output or input file path for safety.
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
