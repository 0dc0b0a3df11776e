package model

import "testing"

func TestFallbackProfile(t *testing.T) {
	p := FallbackProfile(7, "siti.rahman@example.com")
	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
	if p.FullName != "siti.rahman" {
		t.Errorf("FullName = %q, want %q", p.FullName, "siti.rahman")
	}
	if p.Email != "siti.rahman@example.com" {
		t.Errorf("Email = %q", p.Email)
	}
	if p.Role != "user" {
		t.Errorf("Role = %q, want user", p.Role)
	}
}

func TestFallbackProfileDegenerateEmail(t *testing.T) {
	for _, email := range []string{"", "@host.com", "noathere"} {
		p := FallbackProfile(1, email)
		if p.FullName != "User" {
			t.Errorf("FallbackProfile(1, %q).FullName = %q, want User", email, p.FullName)
		}
	}
}

func TestValidDecision(t *testing.T) {
	if !ValidDecision(BookingApproved) || !ValidDecision(BookingRejected) {
		t.Error("approved and rejected should be valid decisions")
	}
	for _, s := range []string{BookingPending, "", "cancelled", "APPROVED"} {
		if ValidDecision(s) {
			t.Errorf("ValidDecision(%q) = true, want false", s)
		}
	}
}
