package tracker

import "testing"

func TestResolveColumn(t *testing.T) {
	headers := []string{"Issue key", "Issue id", "Custom field (Epic Link)", "Status", "Summary"}

	tests := []struct {
		name       string
		candidates []string
		expected   string
	}{
		{"ExactMatch", []string{"issue key"}, "Issue key"},
		{"ExactNormalizesUnderscores", []string{"issue_key"}, "Issue key"},
		{"ExactBeatsSubstring", []string{"status"}, "Status"},
		{"SubstringFallback", []string{"epic link"}, "Custom field (Epic Link)"},
		{"CandidatePriorityOrder", []string{"summary", "status"}, "Summary"},
		{"ExactPassRunsBeforeSubstringPass", []string{"epic link", "status"}, "Status"},
		{"NoMatch", []string{"story points"}, ""},
		{"EmptyCandidates", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColumn(headers, tt.candidates); got != tt.expected {
				t.Errorf("ResolveColumn() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveColumnDeterminism(t *testing.T) {
	headers := []string{"Epic Key A", "Epic Key B"}
	candidates := []string{"epic key"}

	first := ResolveColumn(headers, candidates)
	for i := 0; i < 10; i++ {
		if got := ResolveColumn(headers, candidates); got != first {
			t.Fatalf("ResolveColumn() not deterministic: %q vs %q", got, first)
		}
	}
	// Header order breaks the substring tie.
	if first != "Epic Key A" {
		t.Errorf("ResolveColumn() = %q, want first header to win the tie", first)
	}
}

func TestResolveSchema(t *testing.T) {
	headers := []string{"Issue key", "Issue id", "Issue Type", "Status", "Summary", "Sprint", "Custom field (Story Points)", "Custom field (Epic Link)", "Parent id"}
	schema := ResolveSchema(headers)

	if schema.Key != "Issue key" {
		t.Errorf("Key = %q", schema.Key)
	}
	if schema.IssueType != "Issue Type" {
		t.Errorf("IssueType = %q", schema.IssueType)
	}
	if schema.StoryPoints != "Custom field (Story Points)" {
		t.Errorf("StoryPoints = %q", schema.StoryPoints)
	}
	if schema.EpicLink != "Custom field (Epic Link)" {
		t.Errorf("EpicLink = %q", schema.EpicLink)
	}
	if schema.Parent != "Parent id" {
		t.Errorf("Parent = %q", schema.Parent)
	}
	if schema.EpicKey != "" {
		t.Errorf("EpicKey = %q, want unresolved", schema.EpicKey)
	}
}

func TestProjectKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"PROJ-42", "PROJ"},
		{"abc-1", "abc"},
		{"-1", ""},
		{"PROJ", ""},
		{"123-4", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ProjectKey(tt.key); got != tt.expected {
			t.Errorf("ProjectKey(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestIsCompletedStatus(t *testing.T) {
	for _, s := range []string{"Done", "DONE", "closed", "Deployed to Production", " Signed Off "} {
		if !IsCompletedStatus(s) {
			t.Errorf("IsCompletedStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"In Progress", "To Do", ""} {
		if IsCompletedStatus(s) {
			t.Errorf("IsCompletedStatus(%q) = true, want false", s)
		}
	}
}
