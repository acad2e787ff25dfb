package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
)

// DefaultDistributionThreshold is the minimum direct-linkage coverage
// (linked children / total records) below which the balanced-distribution
// fallback kicks in.
const DefaultDistributionThreshold = 0.10

// Options tunes hierarchy building. The zero value is not usable; call
// DefaultOptions.
type Options struct {
	// DistributionThreshold is the direct-linkage coverage ratio below
	// which unlinked records are spread across same-project epics.
	DistributionThreshold float64
}

// DefaultOptions returns the standard builder tuning.
func DefaultOptions() Options {
	return Options{DistributionThreshold: DefaultDistributionThreshold}
}

// Hierarchy is the output of the two-pass builder.
type Hierarchy struct {
	// Epics is sorted ascending by key regardless of CSV order.
	Epics []*tracker.Epic
	// Children is the flattened child list: epic order x per-epic append
	// order.
	Children []*tracker.ChildIssue
	// LinkedDirect counts children attached via an explicit linkage field,
	// before any balanced distribution.
	LinkedDirect int
	// Distributed counts children attached by the fallback heuristic.
	Distributed int
	// Unattributed counts non-epic records that ended up in no epic.
	Unattributed int
}

// BuildHierarchy reconstructs the epic/child graph from a tokenized main
// CSV export.
//
// Pass 1 indexes every record by ID (duplicates overwrite, last write
// wins, same for duplicate epic keys) and materializes an Epic for each
// record whose issue type is "epic". Pass 2 attributes every non-epic record to an epic through a
// prioritized chain of linkage fields; when direct-linkage coverage falls
// below opts.DistributionThreshold of the record count, remaining records
// are spread across same-project epics (see distribute.go).
func BuildHierarchy(table *tracker.Table, opts Options) (h *Hierarchy, err error) {
	defer func() {
		if r := recover(); r != nil {
			h = nil
			err = fmt.Errorf("failed to process main CSV: %v", r)
		}
	}()

	if table == nil || len(table.Headers) == 0 {
		return nil, fmt.Errorf("failed to process main CSV: empty header row")
	}

	schema := tracker.ResolveSchema(table.Headers)
	if missing := missingIdentityColumns(schema); len(missing) > 0 {
		return nil, fmt.Errorf("failed to process main CSV: missing required columns: %s", strings.Join(missing, ", "))
	}

	h = &Hierarchy{}

	byID := make(map[string]tracker.Record)
	epicByKey := make(map[string]*tracker.Epic)

	// Pass 1: index records and discover epics.
	for _, rec := range table.Records {
		key := rec[schema.Key]
		if schema.ID != "" {
			if id := rec[schema.ID]; id != "" {
				byID[id] = rec
			}
		}

		if !isEpicRecord(rec, schema) || key == "" {
			continue
		}

		points := parsePoints(rec[schema.StoryPoints])
		epic := &tracker.Epic{
			Key:            key,
			Name:           rec[schema.Summary],
			Status:         rec[schema.Status],
			Sprint:         rec[schema.Sprint],
			OwnStoryPoints: points,
			// Children only add to these.
			TotalStoryPoints: points,
			Assignee:         rec[schema.Assignee],
			Creator:          rec[schema.Creator],
			Component:        rec[schema.Component],
			Project:          rec[schema.Project],
			TimeInStatus:     "-",
			CycleTime:        "-",
		}
		if tracker.IsCompletedStatus(epic.Status) {
			epic.CompletedStoryPoints = points
		}
		epicByKey[key] = epic
	}

	// Pass 2: attribute non-epic records.
	linked := make([]bool, len(table.Records))
	for i, rec := range table.Records {
		if isEpicRecord(rec, schema) {
			continue
		}
		epic := matchEpic(rec, schema, epicByKey, byID)
		if epic == nil {
			continue
		}
		attachChild(epic, rec, schema)
		h.LinkedDirect++
		linked[i] = true
	}

	total := len(table.Records)
	if total > 0 && float64(h.LinkedDirect) < opts.DistributionThreshold*float64(total) {
		h.Distributed = distributeUnlinked(table.Records, schema, epicByKey, linked)
		log.Debug().
			Int("direct", h.LinkedDirect).
			Int("distributed", h.Distributed).
			Msg("Balanced distribution fallback applied")
	}

	for _, epic := range epicByKey {
		h.Epics = append(h.Epics, epic)
	}
	sort.Slice(h.Epics, func(i, j int) bool {
		return h.Epics[i].Key < h.Epics[j].Key
	})
	for _, epic := range h.Epics {
		h.Children = append(h.Children, epic.Children...)
	}

	for i, rec := range table.Records {
		if isEpicRecord(rec, schema) {
			continue
		}
		if !linked[i] {
			h.Unattributed++
		}
	}

	return h, nil
}

// missingIdentityColumns returns the logical identity fields the schema
// failed to resolve. The CSV is unusable without them.
func missingIdentityColumns(s tracker.Schema) []string {
	var missing []string
	if s.Key == "" {
		missing = append(missing, "key")
	}
	if s.IssueType == "" {
		missing = append(missing, "issue type")
	}
	if s.Status == "" {
		missing = append(missing, "status")
	}
	if s.Summary == "" {
		missing = append(missing, "summary")
	}
	return missing
}

func isEpicRecord(rec tracker.Record, schema tracker.Schema) bool {
	return strings.EqualFold(strings.TrimSpace(rec[schema.IssueType]), "epic")
}

// matchEpic runs the linkage strategy chain in fixed priority order and
// returns the first epic hit, or nil.
func matchEpic(rec tracker.Record, schema tracker.Schema, epicByKey map[string]*tracker.Epic, byID map[string]tracker.Record) *tracker.Epic {
	// 1. Epic-Link field, exact key match.
	if schema.EpicLink != "" {
		if epic, ok := epicByKey[rec[schema.EpicLink]]; ok {
			return epic
		}
	}
	// 2. Epic-Key field, exact key match.
	if schema.EpicKey != "" {
		if epic, ok := epicByKey[rec[schema.EpicKey]]; ok {
			return epic
		}
	}
	// 3. Parent field holds an ID, not a key: resolve through the ID index
	// and accept only if the target record itself is an epic.
	if schema.Parent != "" {
		if parentRec, ok := byID[rec[schema.Parent]]; ok {
			if isEpicRecord(parentRec, schema) {
				if epic, ok := epicByKey[parentRec[schema.Key]]; ok {
					return epic
				}
			}
		}
	}
	// 4. Custom parent-link field, exact key match.
	if schema.CustomParent != "" {
		if epic, ok := epicByKey[rec[schema.CustomParent]]; ok {
			return epic
		}
	}
	return nil
}

// attachChild creates the ChildIssue for a record and folds its points into
// the parent epic's aggregates.
func attachChild(epic *tracker.Epic, rec tracker.Record, schema tracker.Schema) {
	points := parsePoints(rec[schema.StoryPoints])
	child := &tracker.ChildIssue{
		Key:           rec[schema.Key],
		Name:          rec[schema.Summary],
		IssueType:     strings.ToLower(strings.TrimSpace(rec[schema.IssueType])),
		Status:        rec[schema.Status],
		Sprint:        rec[schema.Sprint],
		StoryPoints:   points,
		ParentEpicKey: epic.Key,
		Completed:     tracker.IsCompletedStatus(rec[schema.Status]),
	}
	epic.Children = append(epic.Children, child)
	epic.TotalStoryPoints += points
	if child.Completed {
		epic.CompletedStoryPoints += points
	}
}

// parsePoints converts a story-point cell to a non-negative number. Blank
// or malformed cells count as zero.
func parsePoints(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
