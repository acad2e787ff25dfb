package analysis

import (
	"fmt"
	"strconv"

	"epiclens/internal/tracker"
)

// NoSprint is the bucket name for epics without a sprint assignment.
const NoSprint = "No Sprint"

// Summary is one rollup row: the whole portfolio or a single sprint.
// Numeric fields keep full precision; one-decimal formatting happens only
// at the display boundary.
type Summary struct {
	Name             string  `json:"name"`
	EpicCount        int     `json:"epicCount"`
	CommittedPoints  float64 `json:"committedPoints"`
	CompletedPoints  float64 `json:"completedPoints"`
	Realization      float64 `json:"realization"`
	AvgCycleTime     float64 `json:"avgCycleTime"`
	AtRiskCount      int     `json:"atRiskCount"`
	AtRiskPercentage float64 `json:"atRiskPercentage"`

	cycleSum   float64
	cycleCount int
}

// Metrics is the derived portfolio snapshot, recomputed fully on every run.
type Metrics struct {
	Overall Summary   `json:"overall"`
	Sprints []Summary `json:"sprintData"`
}

// CalculateMetrics rolls per-epic figures up into sprint-level and
// portfolio-level summaries. Sprint rollups are returned in
// group-discovery order; no cross-sprint ordering is promised.
func CalculateMetrics(epics []*tracker.Epic) (m *Metrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("failed to calculate metrics: %v", r)
		}
	}()

	m = &Metrics{Overall: Summary{Name: "Overall"}}

	sprintIdx := make(map[string]int)
	for _, epic := range epics {
		if epic == nil {
			continue
		}
		sprint := epic.Sprint
		if sprint == "" {
			sprint = NoSprint
		}
		idx, ok := sprintIdx[sprint]
		if !ok {
			idx = len(m.Sprints)
			sprintIdx[sprint] = idx
			m.Sprints = append(m.Sprints, Summary{Name: sprint})
		}

		accumulate(&m.Overall, epic)
		accumulate(&m.Sprints[idx], epic)
	}

	finalize(&m.Overall)
	for i := range m.Sprints {
		finalize(&m.Sprints[i])
	}

	return m, nil
}

func accumulate(s *Summary, epic *tracker.Epic) {
	s.EpicCount++
	s.CommittedPoints += epic.TotalStoryPoints
	s.CompletedPoints += epic.CompletedStoryPoints
	if epic.SLA.Class == tracker.SLAAtRisk {
		s.AtRiskCount++
	}
	// "-" marks epics with no measurable cycle time; they are excluded
	// from the average rather than counted as zero.
	if epic.CycleTime != "" && epic.CycleTime != "-" {
		if v, perr := strconv.ParseFloat(epic.CycleTime, 64); perr == nil {
			s.cycleSum += v
			s.cycleCount++
		}
	}
}

func finalize(s *Summary) {
	if s.CommittedPoints > 0 {
		s.Realization = s.CompletedPoints / s.CommittedPoints * 100
	}
	if s.cycleCount > 0 {
		s.AvgCycleTime = s.cycleSum / float64(s.cycleCount)
	}
	if s.EpicCount > 0 {
		s.AtRiskPercentage = float64(s.AtRiskCount) / float64(s.EpicCount) * 100
	}
}
