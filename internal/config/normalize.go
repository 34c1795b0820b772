package config

import (
	"regexp"
	"strings"
)

const presetIDPattern = "^[a-z0-9][a-z0-9_-]{0,63}$"

var (
	validPresetIDRe = regexp.MustCompile(presetIDPattern)
	invalidIDChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
	leadingDashes   = regexp.MustCompile(`^-+`)
	trailingDashes  = regexp.MustCompile(`-+$`)
)

// NormalizePresetID converts user input into a valid preset id:
// lowercase, max 64 chars, only [a-z0-9_-], invalid chars collapsed to "-",
// leading/trailing dashes stripped. An empty result normalizes to "fast".
func NormalizePresetID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "fast"
	}

	lower := strings.ToLower(trimmed)
	if validPresetIDRe.MatchString(lower) {
		return lower
	}

	result := invalidIDChars.ReplaceAllString(lower, "-")
	result = leadingDashes.ReplaceAllString(result, "")
	result = trailingDashes.ReplaceAllString(result, "")

	if len(result) > 64 {
		result = result[:64]
	}

	if result == "" {
		return "fast"
	}
	return result
}
