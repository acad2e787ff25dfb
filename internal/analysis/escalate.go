package analysis

import (
	"fmt"
	"math"
	"strings"

	"epiclens/internal/tracker"
)

// Template is a rendered escalation notice for one at-risk epic.
type Template struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Recipient string `json:"recipient"`
}

// BuildEscalation formats a human-readable escalation notice for an
// at-risk epic. Formatting problems degrade to a minimal key-and-title
// template; this path is cosmetic and never fails.
func BuildEscalation(epic *tracker.Epic, thresholds tracker.Thresholds, recipient string) (tpl Template) {
	defer func() {
		if r := recover(); r != nil {
			tpl = minimalTemplate(epic, recipient)
		}
	}()

	if epic == nil {
		return Template{Recipient: recipient}
	}

	days := ParseDuration(epic.TimeInStatus)
	over := int(math.Round(days - float64(thresholds.Days(epic.Status))))

	tpl.Recipient = recipient
	tpl.Subject = fmt.Sprintf("SLA escalation: %s is %d day(s) over its %q threshold", epic.Key, over, epic.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "Epic:           %s\n", epic.Key)
	fmt.Fprintf(&b, "Title:          %s\n", epic.Name)
	fmt.Fprintf(&b, "Status:         %s\n", epic.Status)
	fmt.Fprintf(&b, "Time in status: %s\n", epic.TimeInStatus)
	sprint := epic.Sprint
	if sprint == "" {
		sprint = NoSprint
	}
	fmt.Fprintf(&b, "Sprint:         %s\n", sprint)
	fmt.Fprintf(&b, "Story points:   %g\n", epic.TotalStoryPoints)
	fmt.Fprintf(&b, "Child issues:   %d\n", len(epic.Children))
	tpl.Body = b.String()

	return tpl
}

func minimalTemplate(epic *tracker.Epic, recipient string) Template {
	tpl := Template{Recipient: recipient}
	if epic != nil {
		tpl.Subject = fmt.Sprintf("SLA escalation: %s", epic.Key)
		tpl.Body = fmt.Sprintf("Epic: %s\nTitle: %s\n", epic.Key, epic.Name)
	}
	return tpl
}
