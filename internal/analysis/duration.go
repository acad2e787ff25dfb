package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	weeksRe = regexp.MustCompile(`(?i)(\d+)\s*w`)
	daysRe  = regexp.MustCompile(`(?i)(\d+)\s*d`)
	hoursRe = regexp.MustCompile(`(?i)(\d+)\s*h`)
)

// ParseDuration converts a free-form tracker duration string ("2w 3d 5h",
// "10d", "5h 1w") into a day count: weeks*7 + days + hours/24. Any subset
// of the three components may be present, in any order. Empty or
// unparseable input yields 0; this function never fails.
func ParseDuration(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0
	}

	var days float64
	if m := weeksRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			days += float64(v) * 7
		}
	}
	if m := daysRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			days += float64(v)
		}
	}
	if m := hoursRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			days += float64(v) / 24
		}
	}
	return days
}

// normalizeStatusLabel unifies status spellings across the main and time
// exports: lowercase, strip whitespace, hyphens and underscores, so that
// "In Progress", "in-progress" and "IN_PROGRESS" compare equal.
func normalizeStatusLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
