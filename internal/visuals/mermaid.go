package visuals

import (
	"fmt"
	"math"
	"strings"

	"epiclens/internal/analysis"
	"epiclens/internal/tracker"
)

// GenerateRealizationChart creates a Mermaid xychart-beta comparing
// committed vs completed story points per sprint.
func GenerateRealizationChart(metrics *analysis.Metrics) string {
	if metrics == nil || len(metrics.Sprints) == 0 {
		return ""
	}

	var labels []string
	var committed []string
	var completed []string

	maxY := 0.0
	for _, s := range metrics.Sprints {
		labels = append(labels, fmt.Sprintf("%q", s.Name))
		committed = append(committed, fmt.Sprintf("%.1f", s.CommittedPoints))
		completed = append(completed, fmt.Sprintf("%.1f", s.CompletedPoints))
		if s.CommittedPoints > maxY {
			maxY = s.CommittedPoints
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Sprint Realization (Committed vs Completed)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	// Headroom above the tallest bar.
	sb.WriteString(fmt.Sprintf("    y-axis \"Story Points\" 0 --> %d\n", int(math.Ceil(maxY*1.2))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(committed, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(completed, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateHierarchyChart creates a Mermaid flowchart of the epic/child
// graph. Epics at risk are tagged so the UI can style them.
func GenerateHierarchyChart(epics []*tracker.Epic) string {
	if len(epics) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("flowchart TD\n")

	for _, epic := range epics {
		label := epic.Key
		if epic.SLA.Class == tracker.SLAAtRisk {
			label += " (at risk)"
		}
		sb.WriteString(fmt.Sprintf("    %s[%q]\n", nodeID(epic.Key), label))
		for _, child := range epic.Children {
			sb.WriteString(fmt.Sprintf("    %s --> %s[%q]\n", nodeID(epic.Key), nodeID(child.Key), child.Key))
		}
	}

	sb.WriteString("```")
	return sb.String()
}

// nodeID strips characters Mermaid treats as syntax from issue keys.
func nodeID(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
}
