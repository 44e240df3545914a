package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a path or query value, ignoring surrounding spaces
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// OptionalUUID returns nil for an empty or malformed value. Filters use it
// after binding has already rejected malformed ids.
func OptionalUUID(s string) *uuid.UUID {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	id, err := ParseUUID(s)
	if err != nil {
		return nil
	}
	return &id
}

// GenerateCode returns prefix plus eight upper-case hex characters, e.g. PRD-1A2B3C4D
func GenerateCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func GenerateProductCode() string  { return GenerateCode("PRD") }
func GenerateCategoryCode() string { return GenerateCode("CAT") }
