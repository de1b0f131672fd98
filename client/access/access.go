// Package access is the pure role policy shared by the route guard and
// any UI-level gating.
package access

// Allowed reports whether a user with the given role may pass a gate
// declaring the required roles. An empty required set admits any
// authenticated user. There is no role hierarchy: membership is exact.
func Allowed(role string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
