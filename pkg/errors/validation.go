package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds node and connection identifiers.
const maxIDLength = 128

// ValidateID validates a node or connection identifier.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS color keywords in any case, such as "red",
// "Blue" or "currentColor".
var namedColorRegex = regexp.MustCompile(`^[A-Za-z]{3,20}$`)

// funcColorRegex matches CSS color functions such as "rgb(59, 130, 246)",
// "hsl(210deg 50% 40% / 0.5)" or "oklch(0.7 0.1 250)".
var funcColorRegex = regexp.MustCompile(`^(?i:rgba?|hsla?|hwb|lab|lch|oklab|oklch)\([-+0-9.%,/ a-zA-Z]*\)$`)

// ValidateColor validates a color string as a hex color, a CSS keyword or a
// CSS color function. An empty color is allowed; renderers fall back to their
// default palette.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) || funcColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidInput, "invalid color: %q", color)
}

// ValidatePath validates a document path supplied by a host.
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path %q is a directory", path)
	}

	return nil
}
