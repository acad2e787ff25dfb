package commands

import (
	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// loadTables reads the main and (optional) time-tracking CSV exports
// concurrently. A missing or malformed time CSV is a degraded-mode
// condition, not an error: the pipeline continues with no time data.
func loadTables(mainPath, timePath string) (*tracker.Table, *tracker.Table, error) {
	var mainTable, timeTable *tracker.Table

	var g errgroup.Group
	g.Go(func() error {
		t, err := tracker.ReadTable(mainPath)
		if err != nil {
			return err
		}
		mainTable = t
		return nil
	})
	if timePath != "" {
		g.Go(func() error {
			t, err := tracker.ReadTable(timePath)
			if err != nil {
				log.Warn().Err(err).Str("path", timePath).Msg("Time-tracking CSV unusable; continuing without time data")
				return nil
			}
			timeTable = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mainTable, timeTable, nil
}
