package commands

import (
	"fmt"

	"epiclens/internal/analysis"
	"epiclens/internal/settings"
	"epiclens/internal/tracker"

	"github.com/spf13/cobra"
)

var escalateTimePath string

var escalateCmd = &cobra.Command{
	Use:   "escalate <epic-key> <main.csv>",
	Short: "Print the escalation notice for one at-risk epic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		mainTable, timeTable, err := loadTables(args[1], escalateTimePath)
		if err != nil {
			return err
		}

		store := settings.NewStore(cfg.SettingsPath)
		thresholds := store.Load()
		result, err := analysis.Run(analysis.Input{
			Main:       mainTable,
			Time:       timeTable,
			Thresholds: thresholds,
			Options:    analysis.Options{DistributionThreshold: cfg.DistributionThreshold},
		})
		if err != nil {
			return err
		}

		var epic *tracker.Epic
		for _, e := range result.Epics {
			if e.Key == key {
				epic = e
				break
			}
		}
		if epic == nil {
			return fmt.Errorf("epic %q not found", key)
		}
		if epic.SLA.Class != tracker.SLAAtRisk {
			return fmt.Errorf("epic %q is not at risk (%s)", key, epic.SLA.Text)
		}

		tpl := analysis.BuildEscalation(epic, thresholds, cfg.EscalationRecipient)
		fmt.Printf("To:      %s\n", tpl.Recipient)
		fmt.Printf("Subject: %s\n\n", tpl.Subject)
		fmt.Println(tpl.Body)
		return nil
	},
}

func init() {
	escalateCmd.Flags().StringVar(&escalateTimePath, "time", "", "path to the time-tracking CSV export")
	rootCmd.AddCommand(escalateCmd)
}
