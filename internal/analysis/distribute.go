package analysis

import (
	"sort"

	"epiclens/internal/tracker"
)

// distributeUnlinked spreads still-unlinked non-epic records across epics
// sharing their project-key prefix, always picking the epic currently
// holding the fewest children. This is a best-effort heuristic for exports
// whose linkage columns are mostly empty, not a correctness guarantee:
// records whose key prefix matches no known epic project stay unlinked.
//
// linked is aligned with records and is updated in place; the return value
// is the number of records attached here.
func distributeUnlinked(records []tracker.Record, schema tracker.Schema, epicByKey map[string]*tracker.Epic, linked []bool) int {
	// Group epics by project prefix, sorted by key for deterministic tie
	// breaks.
	byProject := make(map[string][]*tracker.Epic)
	for _, epic := range epicByKey {
		if proj := tracker.ProjectKey(epic.Key); proj != "" {
			byProject[proj] = append(byProject[proj], epic)
		}
	}
	for _, group := range byProject {
		sort.Slice(group, func(i, j int) bool { return group[i].Key < group[j].Key })
	}

	attached := 0
	for i, rec := range records {
		if linked[i] || isEpicRecord(rec, schema) {
			continue
		}
		group := byProject[tracker.ProjectKey(rec[schema.Key])]
		if len(group) == 0 {
			continue
		}

		target := group[0]
		for _, epic := range group[1:] {
			if len(epic.Children) < len(target.Children) {
				target = epic
			}
		}

		attachChild(target, rec, schema)
		linked[i] = true
		attached++
	}
	return attached
}
