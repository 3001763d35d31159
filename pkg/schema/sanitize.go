package schema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// SanitizeDescription strips all markup from a field description before it is
// handed to the editor UI. Descriptions originate in project-controlled
// schema files and are untrusted.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.StrictPolicy()
	})
	return descriptionPolicy
}
