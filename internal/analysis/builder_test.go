package analysis

import (
	"testing"

	"epiclens/internal/tracker"
)

var mainHeaders = []string{
	"Issue key", "Issue id", "Issue Type", "Status", "Summary", "Sprint",
	"Custom field (Story Points)", "Custom field (Epic Link)", "Epic Key",
	"Parent id", "Custom field (Parent Link)",
}

// makeTable builds a tokenized table from positional rows matching headers.
func makeTable(headers []string, rows [][]string) *tracker.Table {
	table := &tracker.Table{Headers: headers}
	for _, row := range rows {
		rec := make(tracker.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table
}

func TestBuildHierarchyEpicDiscovery(t *testing.T) {
	table := makeTable(mainHeaders, [][]string{
		{"EPIC-2", "11", "Epic", "In Progress", "Second epic", "Sprint 1", "5"},
		{"EPIC-1", "10", "Epic", "Done", "First epic", "", "3"},
	})

	h, err := BuildHierarchy(table, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildHierarchy() error: %v", err)
	}

	if len(h.Epics) != 2 {
		t.Fatalf("got %d epics, want 2", len(h.Epics))
	}
	// Output order is key-ascending regardless of CSV order.
	if h.Epics[0].Key != "EPIC-1" || h.Epics[1].Key != "EPIC-2" {
		t.Errorf("epics not sorted by key: %s, %s", h.Epics[0].Key, h.Epics[1].Key)
	}

	done := h.Epics[0]
	if done.OwnStoryPoints != 3 || done.TotalStoryPoints != 3 {
		t.Errorf("own/total = %g/%g, want 3/3", done.OwnStoryPoints, done.TotalStoryPoints)
	}
	// A completed epic's own points seed its completed aggregate.
	if done.CompletedStoryPoints != 3 {
		t.Errorf("completed = %g, want 3", done.CompletedStoryPoints)
	}

	inProgress := h.Epics[1]
	if inProgress.CompletedStoryPoints != 0 {
		t.Errorf("completed = %g, want 0 for in-progress epic", inProgress.CompletedStoryPoints)
	}
}

func TestBuildHierarchyLinkageStrategies(t *testing.T) {
	tests := []struct {
		name       string
		row        []string
		wantParent string
	}{
		{
			"EpicLinkField",
			[]string{"TASK-1", "100", "Task", "Done", "t", "", "2", "EPIC-1", "", "", ""},
			"EPIC-1",
		},
		{
			"EpicKeyField",
			[]string{"TASK-1", "100", "Task", "Done", "t", "", "2", "", "EPIC-2", "", ""},
			"EPIC-2",
		},
		{
			"ParentFieldResolvesAsID",
			[]string{"TASK-1", "100", "Task", "Done", "t", "", "2", "", "", "10", ""},
			"EPIC-1",
		},
		{
			"CustomParentField",
			[]string{"TASK-1", "100", "Task", "Done", "t", "", "2", "", "", "", "EPIC-2"},
			"EPIC-2",
		},
		{
			// Priority: the epic-link match must win over a valid parent
			// ID pointing at a different epic.
			"EpicLinkBeatsParentID",
			[]string{"TASK-1", "100", "Task", "Done", "t", "", "2", "EPIC-2", "", "10", ""},
			"EPIC-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := makeTable(mainHeaders, [][]string{
				{"EPIC-1", "10", "Epic", "In Progress", "e1", "", "1"},
				{"EPIC-2", "11", "Epic", "In Progress", "e2", "", "1"},
				tt.row,
			})

			h, err := BuildHierarchy(table, Options{DistributionThreshold: 0})
			if err != nil {
				t.Fatalf("BuildHierarchy() error: %v", err)
			}
			if len(h.Children) != 1 {
				t.Fatalf("got %d children, want 1", len(h.Children))
			}
			if got := h.Children[0].ParentEpicKey; got != tt.wantParent {
				t.Errorf("ParentEpicKey = %q, want %q", got, tt.wantParent)
			}
		})
	}
}

func TestBuildHierarchyChildAggregation(t *testing.T) {
	table := makeTable(mainHeaders, [][]string{
		{"EPIC-1", "10", "Epic", "In Progress", "e1", "", "5"},
		{"TASK-1", "100", "Task", "Done", "t1", "", "3", "EPIC-1"},
		{"TASK-2", "101", "Bug", "In Progress", "t2", "", "2", "EPIC-1"},
	})

	h, err := BuildHierarchy(table, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildHierarchy() error: %v", err)
	}

	epic := h.Epics[0]
	if epic.TotalStoryPoints != 10 {
		t.Errorf("total = %g, want 10", epic.TotalStoryPoints)
	}
	if epic.CompletedStoryPoints != 3 {
		t.Errorf("completed = %g, want 3", epic.CompletedStoryPoints)
	}
	if epic.TotalStoryPoints < epic.OwnStoryPoints {
		t.Error("total < own")
	}
	if epic.CompletedStoryPoints > epic.TotalStoryPoints {
		t.Error("completed > total")
	}

	if len(epic.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(epic.Children))
	}
	if epic.Children[0].IssueType != "task" || epic.Children[1].IssueType != "bug" {
		t.Errorf("issue types not lowercased: %q, %q", epic.Children[0].IssueType, epic.Children[1].IssueType)
	}
	if !epic.Children[0].Completed || epic.Children[1].Completed {
		t.Error("completion flags wrong")
	}
}

func TestBuildHierarchyDuplicateKeysLastWriteWins(t *testing.T) {
	// Two records share an ID; the later one backs the ID index.
	table := makeTable(mainHeaders, [][]string{
		{"EPIC-1", "10", "Epic", "In Progress", "e1", "", "1"},
		{"EPIC-2", "10", "Epic", "In Progress", "e2", "", "1"},
		{"TASK-1", "100", "Task", "Done", "t", "", "2", "", "", "10", ""},
	})

	h, err := BuildHierarchy(table, Options{DistributionThreshold: 0})
	if err != nil {
		t.Fatalf("BuildHierarchy() error: %v", err)
	}
	if len(h.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(h.Children))
	}
	if got := h.Children[0].ParentEpicKey; got != "EPIC-2" {
		t.Errorf("ParentEpicKey = %q, want last-written EPIC-2", got)
	}
}

func TestBuildHierarchyEpicNeverChild(t *testing.T) {
	// An epic record pointing at another epic must not become its child.
	table := makeTable(mainHeaders, [][]string{
		{"EPIC-1", "10", "Epic", "In Progress", "e1", "", "1"},
		{"EPIC-2", "11", "Epic", "In Progress", "e2", "", "1", "EPIC-1"},
	})

	h, err := BuildHierarchy(table, Options{DistributionThreshold: 0})
	if err != nil {
		t.Fatalf("BuildHierarchy() error: %v", err)
	}
	if len(h.Children) != 0 {
		t.Fatalf("got %d children, want 0", len(h.Children))
	}
	if len(h.Epics) != 2 {
		t.Fatalf("got %d epics, want 2", len(h.Epics))
	}
}

func TestBuildHierarchyMissingIdentityColumns(t *testing.T) {
	table := makeTable([]string{"Random", "Columns"}, [][]string{{"a", "b"}})

	if _, err := BuildHierarchy(table, DefaultOptions()); err == nil {
		t.Fatal("BuildHierarchy() should fail without identity columns")
	}
}

func TestBuildHierarchyNilTable(t *testing.T) {
	if _, err := BuildHierarchy(nil, DefaultOptions()); err == nil {
		t.Fatal("BuildHierarchy(nil) should fail")
	}
}
