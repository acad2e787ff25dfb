package analysis

import (
	"epiclens/internal/tracker"
)

// CalculateSLAStatus classifies one epic's SLA risk. Completed statuses are
// always "closed" no matter how long they sat anywhere. Otherwise the
// elapsed days in the current status are compared against the threshold for
// that status (default entry backs unlisted statuses); the comparison is >=,
// so an epic exactly at its threshold is already at risk.
func CalculateSLAStatus(status, timeInStatus string, thresholds tracker.Thresholds) tracker.SLAStatus {
	if tracker.IsCompletedStatus(status) {
		return tracker.SLAStatus{Class: tracker.SLAClosed, Text: "Closed"}
	}

	days := ParseDuration(timeInStatus)
	if days >= float64(thresholds.Days(status)) {
		return tracker.SLAStatus{Class: tracker.SLAAtRisk, Text: "At Risk"}
	}
	return tracker.SLAStatus{Class: tracker.SLAOnTrack, Text: "On Track"}
}
