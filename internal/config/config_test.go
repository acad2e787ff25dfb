package config

import "testing"

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback float64
		expected float64
	}{
		{"Valid", "0.25", 0.1, 0.25},
		{"Zero", "0", 0.1, 0},
		{"One", "1", 0.1, 1},
		{"AboveOne", "1.5", 0.1, 0.1},
		{"Negative", "-0.2", 0.1, 0.1},
		{"Garbage", "lots", 0.1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EPICLENS_TEST_RATIO", tt.value)
			if got := getEnvFloat("EPICLENS_TEST_RATIO", tt.fallback); got != tt.expected {
				t.Errorf("getEnvFloat() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetEnvFloatUnset(t *testing.T) {
	if got := getEnvFloat("EPICLENS_TEST_MISSING", 0.42); got != 0.42 {
		t.Errorf("getEnvFloat() = %v, want fallback", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EPICLENS_TEST_STR", "hello")
	if got := getEnv("EPICLENS_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("getEnv() = %q", got)
	}
	if got := getEnv("EPICLENS_TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want fallback", got)
	}
}
