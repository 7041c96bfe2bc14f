package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/NikhilTalatule/MarketStream-ETL/config"
)

var log = logrus.New()

var rootCMD = &cobra.Command{
	Use:   "marketstream",
	Short: "MarketStream ETL — exchange trade record pipeline",
	Long: `A CLI for running the MarketStream batch ETL pipeline: parse,
validate, derive technical indicators, bulk-load into Postgres, and emit a
columnar analytic file, or generate synthetic trade data for testing.`,
}

func Execute() {
	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetLevel(logrus.InfoLevel)
	rootCMD.AddCommand(runCMD)
	rootCMD.AddCommand(serveCMD)
	rootCMD.AddCommand(generateCMD)
}

// applyLogLevel sets the process-wide logger's level from cfg.LogLevel,
// falling back to info on an unrecognized value.
func applyLogLevel(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}
