package utils

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. This is
// a shape check to reject obvious garbage before touching the store,
// not a deliverability guarantee.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
