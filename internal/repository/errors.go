// Package repository implements data access over MySQL. Sentinel
// errors defined here let handlers pick the right HTTP response and
// degrade policy without inspecting driver error strings.
package repository

import "errors"

// ErrUnavailable is returned by every repository method when no live
// database handle exists. Handlers translate it into the documented
// fallback for their endpoint (placeholder catalog, empty list,
// zeroed stats) or a 503 for writes.
var ErrUnavailable = errors.New("backend unavailable")

// ErrConflict is returned when an update cannot proceed because of
// conflicting state, such as deciding a booking that is no longer
// pending. Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering an email that is
// already taken. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
