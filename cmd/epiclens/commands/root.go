package commands

import (
	"epiclens/internal/config"
	"epiclens/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "epiclens",
	Short: "epiclens reconstructs epic hierarchies and SLA metrics from tracker CSV exports",
	Long: `epiclens ingests CSV exports from an issue tracker, links child issues to
their parent epics (with a load-balancing fallback when linkage data is
sparse), computes time-in-status, cycle-time, SLA-risk and sprint-rollup
metrics, and serves the results to a browser UI.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("epiclens starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
