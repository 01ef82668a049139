package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"crew", RoleCrew, true},
		{"admin", RoleAdmin, true},
		{"psychologist", RolePsychologist, true},
		{"captain", "", false},
		{"Crew", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseRole(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCanReviewCheckIns(t *testing.T) {
	if RoleCrew.CanReviewCheckIns() {
		t.Error("crew must not review check-ins")
	}
	if !RoleAdmin.CanReviewCheckIns() {
		t.Error("admin should review check-ins")
	}
	if !RolePsychologist.CanReviewCheckIns() {
		t.Error("psychologist should review check-ins")
	}
}

func TestMoodValid(t *testing.T) {
	for _, m := range []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range []Mood{"", "fine", "GREAT"} {
		if m.Valid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
