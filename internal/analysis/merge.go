package analysis

import (
	"fmt"

	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
)

// Statuses whose combined residency makes up an epic's cycle time.
var cycleTimeStatuses = []string{"In Progress", "Code Review"}

// MergeEpicData folds the time-tracking map into the epic set and derives
// the per-epic time-in-status, cycle-time and SLA figures. A failure while
// processing one epic never aborts the batch: that epic gets safe defaults
// and the rest proceed.
func MergeEpicData(epics []*tracker.Epic, tm TimeMap, thresholds tracker.Thresholds) []*tracker.Epic {
	for _, epic := range epics {
		if epic == nil {
			continue
		}
		if err := mergeOne(epic, tm, thresholds); err != nil {
			log.Warn().Err(err).Msg("Epic time merge failed; substituting defaults")
			epic.TimeInStatus = "-"
			epic.CycleTime = "-"
			epic.SLA = tracker.SLAStatus{Class: tracker.SLAOnTrack, Text: "Unknown"}
		}
	}
	return epics
}

func mergeOne(epic *tracker.Epic, tm TimeMap, thresholds tracker.Thresholds) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("merge %q: %v", keyOrBlank(epic), r)
		}
	}()

	epic.TimeInStatus = "-"
	if d := tm.durationFor(epic.Key, epic.Status); d != "" {
		epic.TimeInStatus = d
	}

	var cycle float64
	for _, status := range cycleTimeStatuses {
		cycle += ParseDuration(tm.durationFor(epic.Key, status))
	}
	if cycle > 0 {
		epic.CycleTime = fmt.Sprintf("%.1f", cycle)
	} else {
		epic.CycleTime = "-"
	}

	epic.SLA = CalculateSLAStatus(epic.Status, epic.TimeInStatus, thresholds)
	return nil
}

func keyOrBlank(epic *tracker.Epic) string {
	if epic == nil {
		return ""
	}
	return epic.Key
}
