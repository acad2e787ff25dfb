package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"epiclens/internal/analysis"
	"epiclens/internal/settings"
	"epiclens/internal/visuals"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeTimePath string
	analyzeJSON     bool
	analyzeMermaid  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <main.csv>",
	Short: "Run the full analysis once and print the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mainTable, timeTable, err := loadTables(args[0], analyzeTimePath)
		if err != nil {
			return err
		}

		store := settings.NewStore(cfg.SettingsPath)
		result, err := analysis.Run(analysis.Input{
			Main:       mainTable,
			Time:       timeTable,
			Thresholds: store.Load(),
			Options:    analysis.Options{DistributionThreshold: cfg.DistributionThreshold},
		})
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			log.Warn().Msg(w)
		}
		if len(result.Epics) == 0 {
			return fmt.Errorf("no epics found in %s", args[0])
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printSummary(result)

		if analyzeMermaid {
			fmt.Println()
			fmt.Println(visuals.GenerateRealizationChart(result.Metrics))
			fmt.Println()
			fmt.Println(visuals.GenerateHierarchyChart(result.Epics))
		}
		return nil
	},
}

func printSummary(result *analysis.Result) {
	o := result.Metrics.Overall
	fmt.Printf("Epics: %d   Committed: %g   Completed: %g   Realization: %.1f%%   Avg cycle: %.1fd   At risk: %d (%.1f%%)\n\n",
		o.EpicCount, o.CommittedPoints, o.CompletedPoints, o.Realization, o.AvgCycleTime, o.AtRiskCount, o.AtRiskPercentage)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tSTATUS\tSPRINT\tPOINTS\tDONE\tCHILDREN\tIN STATUS\tCYCLE\tSLA")
	for _, e := range result.Epics {
		sprint := e.Sprint
		if sprint == "" {
			sprint = analysis.NoSprint
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%g\t%d\t%s\t%s\t%s\n",
			e.Key, e.Name, e.Status, sprint, e.TotalStoryPoints, e.CompletedStoryPoints,
			len(e.Children), e.TimeInStatus, e.CycleTime, e.SLA.Text)
	}
	w.Flush()

	fmt.Println()
	sw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(sw, "SPRINT\tEPICS\tCOMMITTED\tCOMPLETED\tREALIZATION\tAVG CYCLE\tAT RISK")
	for _, s := range result.Metrics.Sprints {
		fmt.Fprintf(sw, "%s\t%d\t%g\t%g\t%.1f%%\t%.1fd\t%d\n",
			s.Name, s.EpicCount, s.CommittedPoints, s.CompletedPoints, s.Realization, s.AvgCycleTime, s.AtRiskCount)
	}
	sw.Flush()
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTimePath, "time", "", "path to the time-tracking CSV export")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeMermaid, "mermaid", false, "print Mermaid charts after the summary")
	rootCmd.AddCommand(analyzeCmd)
}
