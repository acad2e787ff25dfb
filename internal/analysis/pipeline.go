package analysis

import (
	"fmt"

	"epiclens/internal/tracker"
)

// Input carries everything one analysis run consumes. Main is required;
// Time is optional and its absence only degrades fidelity. Thresholds are
// passed explicitly on every run so that reconfiguration is a pure re-run,
// never an ambient-state mutation.
type Input struct {
	Main       *tracker.Table
	Time       *tracker.Table
	Thresholds tracker.Thresholds
	Options    Options
}

// Result is the immutable output of one run.
type Result struct {
	Epics    []*tracker.Epic       `json:"epics"`
	Children []*tracker.ChildIssue `json:"children"`
	Metrics  *Metrics              `json:"metrics"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Run executes the full batch transform: hierarchy building, time/SLA
// merge, then metrics rollup. Each invocation rebuilds the epic graph from
// scratch, so re-running with identical inputs and thresholds is
// idempotent. Degraded-mode conditions (missing time data, no epics,
// unattributed records) surface as warnings, not errors.
func Run(in Input) (*Result, error) {
	h, err := BuildHierarchy(in.Main, in.Options)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Epics:    h.Epics,
		Children: h.Children,
	}

	if len(h.Epics) == 0 {
		res.Warnings = append(res.Warnings, "no epics found in main CSV")
	}
	if in.Time == nil {
		res.Warnings = append(res.Warnings, "no time-tracking CSV supplied; SLA figures assume zero elapsed time")
	}
	if h.Unattributed > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d record(s) could not be attributed to any epic and are excluded from rollups", h.Unattributed))
	}

	tm := BuildTimeMap(in.Time)
	MergeEpicData(res.Epics, tm, in.Thresholds)

	metrics, err := CalculateMetrics(res.Epics)
	if err != nil {
		return nil, err
	}
	res.Metrics = metrics

	return res, nil
}
