package domain

import (
	"testing"
	"time"
)

func TestFilingStatusValid(t *testing.T) {
	valid := []FilingStatus{
		FilingSingle, FilingMarriedJoint, FilingMarriedSeparate,
		FilingHeadOfHousehold, FilingQualifyingWidow,
	}
	for _, fs := range valid {
		if !fs.Valid() {
			t.Errorf("Expected %q to be valid", fs)
		}
	}

	invalid := []FilingStatus{"", "married", "widower", "SINGLE"}
	for _, fs := range invalid {
		if fs.Valid() {
			t.Errorf("Expected %q to be invalid", fs)
		}
	}
}

func TestFilingStatusIsJoint(t *testing.T) {
	if !FilingMarriedJoint.IsJoint() {
		t.Error("Expected married_joint to be joint")
	}
	if !FilingQualifyingWidow.IsJoint() {
		t.Error("Expected qualifying_widow to be joint")
	}
	if FilingSingle.IsJoint() || FilingMarriedSeparate.IsJoint() || FilingHeadOfHousehold.IsJoint() {
		t.Error("Expected single, married_separate, and head_of_household to not be joint")
	}
}

func TestDependentAgeAtYearEnd(t *testing.T) {
	tests := []struct {
		name    string
		dob     time.Time
		taxYear int
		want    int
	}{
		{"born mid-year", time.Date(2010, time.June, 15, 0, 0, 0, 0, time.UTC), 2023, 13},
		{"seventeenth birthday during year", time.Date(2006, time.March, 1, 0, 0, 0, 0, time.UTC), 2023, 17},
		{"born december 31", time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC), 2023, 17},
		{"born in tax year", time.Date(2023, time.August, 2, 0, 0, 0, 0, time.UTC), 2023, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dependent{DateOfBirth: tt.dob}
			if got := d.AgeAtYearEnd(tt.taxYear); got != tt.want {
				t.Errorf("AgeAtYearEnd(%d) = %d, want %d", tt.taxYear, got, tt.want)
			}
		})
	}
}
