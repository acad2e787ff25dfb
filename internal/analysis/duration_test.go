package analysis

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"Empty", "", 0},
		{"Sentinel", "-", 0},
		{"Garbage", "not a duration", 0},
		{"DaysOnly", "10d", 10},
		{"WeeksOnly", "2w", 14},
		{"HoursOnly", "12h", 0.5},
		{"AllComponents", "2w 3d 5h", 2*7 + 3 + 5.0/24},
		{"ReversedOrder", "5h 3d 2w", 2*7 + 3 + 5.0/24},
		{"UppercaseUnits", "1W 2D 6H", 7 + 2 + 0.25},
		{"SpacedUnits", "3 d", 3},
		{"NoSpaces", "1w2d", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDuration(tt.text)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestParseDurationNeverNegative(t *testing.T) {
	for _, text := range []string{"", "-", "-5d", "w d h", "0d 0h"} {
		if got := ParseDuration(text); got < 0 {
			t.Errorf("ParseDuration(%q) = %v, want >= 0", text, got)
		}
	}
}

func TestNormalizeStatusLabel(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"In Progress", "inprogress"},
		{"in-progress", "inprogress"},
		{"IN_PROGRESS", "inprogress"},
		{"Code Review", "codereview"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeStatusLabel(tt.in); got != tt.out {
			t.Errorf("normalizeStatusLabel(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
