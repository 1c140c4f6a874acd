package cli

import (
	"fmt"
	"strings"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/platforms"
)

// ValidateOutputFormat checks that the --output value is supported
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q: must be text, json, or yaml", format)
}

// ValidatePlatform checks that the platform name is one we have limits for
func ValidatePlatform(name string) (models.Platform, error) {
	p := models.Platform(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := platforms.For(p); !ok {
		var known []string
		for _, k := range platforms.All() {
			known = append(known, string(k))
		}
		return "", fmt.Errorf("unknown platform %q: must be one of %s", name, strings.Join(known, ", "))
	}
	return p, nil
}

// ParsePlatforms validates a comma separated platform list
func ParsePlatforms(raw string) ([]models.Platform, error) {
	var out []models.Platform
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		p, err := ValidatePlatform(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no platforms given")
	}
	return out, nil
}

// Contains checks if a string slice contains an item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
