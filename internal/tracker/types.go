package tracker

import "strings"

// Epic is a top-level work item that aggregates child issues. Aggregate
// point totals are mutated as children are attached during hierarchy
// building; everything else is copied verbatim from the source record.
type Epic struct {
	Key                  string        `json:"key"`
	Name                 string        `json:"name"`
	Status               string        `json:"status"`
	Sprint               string        `json:"sprint,omitempty"`
	OwnStoryPoints       float64       `json:"ownStoryPoints"`
	TotalStoryPoints     float64       `json:"totalStoryPoints"`
	CompletedStoryPoints float64       `json:"completedStoryPoints"`
	Children             []*ChildIssue `json:"children"`

	Assignee  string `json:"assignee,omitempty"`
	Creator   string `json:"creator,omitempty"`
	Component string `json:"component,omitempty"`
	Project   string `json:"project,omitempty"`

	// Populated by the time/SLA merge step. "-" means no time data.
	TimeInStatus string    `json:"timeInStatus"`
	CycleTime    string    `json:"cycleTime"`
	SLA          SLAStatus `json:"sla"`
}

// ChildIssue is a work item linked to exactly one epic. Immutable after
// creation; the parent epic owns it.
type ChildIssue struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	IssueType     string  `json:"issueType"`
	Status        string  `json:"status"`
	Sprint        string  `json:"sprint,omitempty"`
	StoryPoints   float64 `json:"storyPoints"`
	ParentEpicKey string  `json:"parentEpicKey"`
	Completed     bool    `json:"completed"`
}

// SLA classification classes.
const (
	SLAClosed  = "closed"
	SLAAtRisk  = "at-risk"
	SLAOnTrack = "on-track"
)

// SLAStatus is the derived risk classification for an epic. Recomputed on
// every run; never persisted.
type SLAStatus struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

// Thresholds maps a lowercased status name to the maximum number of days
// that status may persist before an epic is flagged at risk. The "default"
// key backs statuses not listed explicitly.
type Thresholds map[string]int

// DefaultKey is the fallback entry consulted for unlisted statuses.
const DefaultKey = "default"

// Days returns the threshold for a status, falling back to the default
// entry when the status is unlisted.
func (t Thresholds) Days(status string) int {
	if d, ok := t[strings.ToLower(status)]; ok {
		return d
	}
	return t[DefaultKey]
}

// completedStatuses is the fixed set of statuses that count as finished
// work. Membership checks are case-insensitive.
var completedStatuses = map[string]bool{
	"done":                   true,
	"completed":              true,
	"closed":                 true,
	"released":               true,
	"deployed to production": true,
	"signed off":             true,
}

// IsCompletedStatus reports whether a status counts as finished work.
func IsCompletedStatus(status string) bool {
	return completedStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// ProjectKey extracts the leading alphabetic project prefix from an issue
// key ("PROJ-42" -> "PROJ"). Returns "" when the key has no prefix-hyphen
// shape.
func ProjectKey(key string) string {
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '-' {
			if i == 0 {
				return ""
			}
			return key[:i]
		}
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return ""
		}
	}
	return ""
}
