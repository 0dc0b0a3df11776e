package utils

// Failure contexts for user-facing error messages.
const (
	MsgAuth    = "auth"
	MsgReset   = "reset"
	MsgProfile = "profile"
	MsgBooking = "booking"
	MsgGeneric = "generic"
)

// SafeErrorMessage maps a failure context to a canned, non-technical
// sentence. Internal error detail is logged, never surfaced.
func SafeErrorMessage(context string) string {
	switch context {
	case MsgAuth:
		return "Invalid email or password. Please try again."
	case MsgReset:
		return "Failed to send reset link. Please try again later."
	case MsgProfile:
		return "Failed to update. Please try again."
	case MsgBooking:
		return "Failed to save booking. Please try again."
	}
	return "An error occurred. Please try again."
}
