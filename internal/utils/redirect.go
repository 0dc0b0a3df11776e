package utils

import "strings"

// allowedRedirectPaths is the fixed set of same-origin relative pages
// a client may be sent to after login. Anything else is dropped to
// prevent open redirects (e.g. ?redirect=https://evil.com).
var allowedRedirectPaths = []string{
	"dashboard.html", "profile.html", "booking.html", "index.html",
	"admin/index.html", "admin/bookings.html", "admin/services.html",
	"admin/users.html", "admin/admins.html", "admin/slider.html",
}

// SafeRedirectPath validates a user-supplied post-login redirect.
// It returns the matching allow-listed path, or "" when the input
// contains a scheme separator, double slash, parent traversal, a
// leading slash, or simply is not on the list. Query strings are
// stripped before matching.
func SafeRedirectPath(redirect string) string {
	s := strings.ToLower(strings.TrimSpace(redirect))
	if s == "" {
		return ""
	}
	if strings.Contains(s, "//") || strings.Contains(s, ":") ||
		strings.Contains(s, "..") || strings.HasPrefix(s, "/") {
		return ""
	}
	base, _, _ := strings.Cut(s, "?")
	for _, p := range allowedRedirectPaths {
		if base == p {
			return p
		}
	}
	return ""
}
