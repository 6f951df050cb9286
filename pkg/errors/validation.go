package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxSafeDepth is the deepest recursion accepted without an explicit force.
// Circle count grows as 2*3^D+2, so depth 10 already yields ~118k circles.
const MaxSafeDepth = 10

// ValidateSeed checks the three seed values (curvatures or radii) before any
// geometry runs. Zero, negative, NaN and infinite values are rejected.
func ValidateSeed(values ...float64) error {
	if len(values) != 3 {
		return New(ErrCodeInvalidInput, "expected 3 seed values, got %d", len(values))
	}
	for i, v := range values {
		switch {
		case v == 0:
			return New(ErrCodeInvalidInput, "curvature or radius can't be 0 (c%d)", i+1)
		case math.IsNaN(v) || math.IsInf(v, 0):
			return New(ErrCodeInvalidInput, "c%d is not a finite number", i+1)
		case v < 0:
			return New(ErrCodeInvalidInput, "c%d must be positive, got %g", i+1, v)
		}
	}
	return nil
}

// ValidateDepth checks a recursion depth. Depths above MaxSafeDepth are only
// allowed when force is set.
func ValidateDepth(depth int, force bool) error {
	if depth < 0 {
		return New(ErrCodeInvalidInput, "depth must be non-negative, got %d", depth)
	}
	if depth > MaxSafeDepth && !force {
		return New(ErrCodeInvalidInput, "depth %d exceeds %d; number of circles grows as 2*3^D", depth, MaxSafeDepth)
	}
	return nil
}

// ValidateThreshold checks the size threshold fraction, which must lie in (0, 1).
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || t <= 0 || t >= 1 {
		return New(ErrCodeInvalidInput, "threshold must be in (0, 1), got %g", t)
	}
	return nil
}

// ValidateSchemeName validates a color scheme name for safety.
// Scheme names reach the core from query strings and config files, so names
// with control characters or path components are rejected outright.
func ValidateSchemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "color scheme name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "color scheme name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "color scheme name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\.") {
		return New(ErrCodeInvalidInput, "color scheme name contains invalid characters: %q", name)
	}

	return nil
}
