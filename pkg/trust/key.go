package trust

import (
	"regexp"
	"strings"
)

const (
	// MaxKeyLength keeps keys DNS-label safe; trust keys double as subdomains.
	MaxKeyLength = 63
	MinKeyLength = 1
)

// keyPattern accepts lowercase alphanumerics with inner hyphens.
// Candidates are normalized before matching, so uppercase input is
// handled by NormalizeKey rather than widening the pattern.
var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// reservedKeys are operational subdomains and aliases that must never
// resolve to a tenant, no matter what the system dataset contains.
var reservedKeys = map[string]struct{}{
	"www":        {},
	"admin":      {},
	"api":        {},
	"app":        {},
	"system":     {},
	"mail":       {},
	"static":     {},
	"assets":     {},
	"status":     {},
	"monitoring": {},
	"localhost":  {},
}

// NormalizeKey lowercases and trims a candidate key. Every lookup and
// cache access goes through the normalized form so "Acme" and "acme"
// can never address different entries.
func NormalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsReservedKey reports whether the normalized key is an operational
// alias rather than a tenant.
func IsReservedKey(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// IsValidKey reports whether a normalized key satisfies the length
// bounds and allowed alphabet. It does not consult the reserved set.
func IsValidKey(key string) bool {
	if len(key) < MinKeyLength || len(key) > MaxKeyLength {
		return false
	}
	return keyPattern.MatchString(key)
}
