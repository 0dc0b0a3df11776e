package utils

import "testing"

func TestSafeRedirectPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dashboard.html", "dashboard.html"},
		{"  Dashboard.HTML  ", "dashboard.html"},
		{"booking.html?service=3", "booking.html"},
		{"admin/index.html", "admin/index.html"},
		{"", ""},
		{"https://evil.com", ""},
		{"//evil.com/dashboard.html", ""},
		{"../admin/index.html", ""},
		{"/dashboard.html", ""},
		{"javascript:alert(1)", ""},
		{"unknown.html", ""},
	}
	for _, c := range cases {
		if got := SafeRedirectPath(c.in); got != c.want {
			t.Errorf("SafeRedirectPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
