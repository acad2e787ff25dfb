package analysis

import (
	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
)

// TimeMap holds the time-tracking export: epic key -> status label ->
// free-text duration. Status labels keep their source spelling; lookups go
// through normalizeStatusLabel.
type TimeMap map[string]map[string]string

// BuildTimeMap converts a tokenized time-tracking CSV into a TimeMap. The
// table needs a resolvable key column; every other column is treated as a
// status holding a duration string. A nil or unusable table yields an empty
// map, never an error: time data is optional and its absence only degrades
// fidelity.
func BuildTimeMap(table *tracker.Table) TimeMap {
	tm := make(TimeMap)
	if table == nil || len(table.Headers) == 0 {
		return tm
	}

	keyCol := tracker.ResolveColumn(table.Headers, tracker.DefaultFieldCandidates["key"])
	if keyCol == "" {
		log.Warn().Msg("Time-tracking CSV has no key column; continuing without time data")
		return tm
	}

	for _, rec := range table.Records {
		key := rec[keyCol]
		if key == "" {
			continue
		}
		entry := make(map[string]string, len(rec)-1)
		for header, value := range rec {
			if header == keyCol || value == "" {
				continue
			}
			entry[header] = value
		}
		tm[key] = entry
	}

	return tm
}

// durationFor finds the duration entry whose status label normalizes to the
// given status. Returns "" when the entry is absent.
func (tm TimeMap) durationFor(key, status string) string {
	entry, ok := tm[key]
	if !ok {
		return ""
	}
	want := normalizeStatusLabel(status)
	for label, value := range entry {
		if normalizeStatusLabel(label) == want {
			return value
		}
	}
	return ""
}
