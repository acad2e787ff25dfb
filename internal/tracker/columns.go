package tracker

import "strings"

// Logical field names used by the analysis pipeline. Schema maps each one
// to the physical header that backs it, or "" when no header matched.
type Schema struct {
	Key          string
	ID           string
	IssueType    string
	Status       string
	Summary      string
	Sprint       string
	StoryPoints  string
	EpicLink     string
	EpicKey      string
	Parent       string
	CustomParent string
	Assignee     string
	Creator      string
	Component    string
	Project      string
}

// DefaultFieldCandidates lists, per logical field, the physical header
// names seen across export templates, in match-priority order. This is
// configuration data: export templates differ between tracker versions and
// between cloud and data-center instances.
var DefaultFieldCandidates = map[string][]string{
	"key":          {"issue key", "key"},
	"id":           {"issue id", "id"},
	"issueType":    {"issue type", "issuetype", "type"},
	"status":       {"status"},
	"summary":      {"summary", "title", "name"},
	"sprint":       {"sprint"},
	"storyPoints":  {"custom field (story points)", "story points", "story point estimate", "storypoints"},
	"epicLink":     {"custom field (epic link)", "epic link"},
	"epicKey":      {"epic key"},
	"parent":       {"parent id", "parent"},
	"customParent": {"custom field (parent link)", "parent link", "parent key"},
	"assignee":     {"assignee"},
	"creator":      {"creator", "reporter"},
	"component":    {"component/s", "components", "component"},
	"project":      {"project name", "project key", "project"},
}

// normalizeHeader lowercases and strips whitespace and underscores so that
// "Issue Key", "issue_key" and "ISSUEKEY" all compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolveColumn picks the physical header backing a logical field. Each
// candidate is tried in the caller's priority order: an exact normalized
// match across all headers wins first; failing that, the first header whose
// normalized form contains the normalized candidate as a substring.
// Returns "" when no candidate matches by either rule. Deterministic: ties
// break by candidate order, then header order.
func ResolveColumn(headers []string, candidates []string) string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for _, cand := range candidates {
		nc := normalizeHeader(cand)
		if nc == "" {
			continue
		}
		for i, nh := range normalized {
			if nh == nc {
				return headers[i]
			}
		}
	}

	for _, cand := range candidates {
		nc := normalizeHeader(cand)
		if nc == "" {
			continue
		}
		for i, nh := range normalized {
			if strings.Contains(nh, nc) {
				return headers[i]
			}
		}
	}

	return ""
}

// ResolveSchema resolves the full logical schema against a header row using
// DefaultFieldCandidates.
func ResolveSchema(headers []string) Schema {
	pick := func(field string) string {
		return ResolveColumn(headers, DefaultFieldCandidates[field])
	}
	return Schema{
		Key:          pick("key"),
		ID:           pick("id"),
		IssueType:    pick("issueType"),
		Status:       pick("status"),
		Summary:      pick("summary"),
		Sprint:       pick("sprint"),
		StoryPoints:  pick("storyPoints"),
		EpicLink:     pick("epicLink"),
		EpicKey:      pick("epicKey"),
		Parent:       pick("parent"),
		CustomParent: pick("customParent"),
		Assignee:     pick("assignee"),
		Creator:      pick("creator"),
		Component:    pick("component"),
		Project:      pick("project"),
	}
}
