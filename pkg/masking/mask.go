// Package masking redacts credentials before they reach log output. The API
// key identifies the account and doubles as the cache namespace, so log lines
// carry only a masked form.
package masking

import (
	"strings"

	masker "github.com/goliatone/go-masker"
)

func init() {
	for _, field := range []string{"api_key", "apikey", "apiKey", "api_secret", "secret"} {
		masker.Default.RegisterMaskField(field, "preserveEnds(2,2)")
	}
}

// APIKey returns a masked copy of the key, keeping two characters at each end
// when the value is long enough to stay unidentifiable.
func APIKey(key string) string {
	if key == "" {
		return ""
	}
	if masked, err := masker.Default.String("preserveEnds(2,2)", key); err == nil {
		return masked
	}
	// Fallback masking if no rule is registered.
	runes := []rune(key)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
