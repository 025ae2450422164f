package utils

import "strings"

// OriginAllowed reports whether origin is in allowed. A "*" entry allows
// everything; an empty origin (non-browser client) is always allowed.
func OriginAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(strings.TrimRight(a, "/"), strings.TrimRight(origin, "/")) {
			return true
		}
	}
	return false
}
