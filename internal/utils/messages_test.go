package utils

import "testing"

func TestSafeErrorMessage(t *testing.T) {
	cases := []struct {
		context string
		want    string
	}{
		{MsgAuth, "Invalid email or password. Please try again."},
		{MsgReset, "Failed to send reset link. Please try again later."},
		{MsgProfile, "Failed to update. Please try again."},
		{MsgBooking, "Failed to save booking. Please try again."},
		{MsgGeneric, "An error occurred. Please try again."},
		{"something-unknown", "An error occurred. Please try again."},
	}
	for _, c := range cases {
		if got := SafeErrorMessage(c.context); got != c.want {
			t.Errorf("SafeErrorMessage(%q) = %q, want %q", c.context, got, c.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+y@sub.domain.org"}
	invalid := []string{"", "plain", "@no-local.com", "no-at.com", "two words@x.com", "a@b"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}
