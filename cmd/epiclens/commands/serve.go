package commands

import (
	"fmt"

	"epiclens/internal/analysis"
	"epiclens/internal/server"
	"epiclens/internal/settings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveTimePath string
	serveAddr     string
	serveOpen     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <main.csv>",
	Short: "Serve the analysis results to a browser UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mainTable, timeTable, err := loadTables(args[0], serveTimePath)
		if err != nil {
			return err
		}

		store := settings.NewStore(cfg.SettingsPath)
		srv, err := server.New(mainTable, timeTable, store,
			analysis.Options{DistributionThreshold: cfg.DistributionThreshold},
			cfg.EscalationRecipient)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}

		if serveOpen {
			url := fmt.Sprintf("http://%s/", addr)
			go func() {
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
				}
			}()
		}

		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveTimePath, "time", "", "path to the time-tracking CSV export")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to LISTEN_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the report in the default browser")
	rootCmd.AddCommand(serveCmd)
}
