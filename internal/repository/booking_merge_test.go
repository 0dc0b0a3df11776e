package repository

import "testing"

func TestMergeProfiles(t *testing.T) {
	details := []BookingDetail{
		{ID: 1, UserID: 10},
		{ID: 2, UserID: 20},
		{ID: 3, UserID: 10},
		{ID: 4, UserID: 30},
	}
	profiles := []ProfileSummary{
		{ID: 10, FullName: "Aina", Email: "aina@example.com"},
		{ID: 20, FullName: "Ben", Email: "ben@example.com"},
	}

	mergeProfiles(details, profiles)

	if details[0].Profile == nil || details[0].Profile.FullName != "Aina" {
		t.Errorf("booking 1 profile = %+v, want Aina", details[0].Profile)
	}
	if details[1].Profile == nil || details[1].Profile.FullName != "Ben" {
		t.Errorf("booking 2 profile = %+v, want Ben", details[1].Profile)
	}
	if details[2].Profile == nil || details[2].Profile.ID != 10 {
		t.Errorf("booking 3 should reuse owner 10's profile, got %+v", details[2].Profile)
	}
	if details[3].Profile != nil {
		t.Errorf("booking 4 has no profile row, want nil, got %+v", details[3].Profile)
	}
}

func TestMergeProfilesEmpty(t *testing.T) {
	details := []BookingDetail{{ID: 1, UserID: 10}}
	mergeProfiles(details, nil)
	if details[0].Profile != nil {
		t.Errorf("profile = %+v, want nil with no profile rows", details[0].Profile)
	}
}
