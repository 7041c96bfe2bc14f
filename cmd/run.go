package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikhilTalatule/MarketStream-ETL/config"
	"github.com/NikhilTalatule/MarketStream-ETL/pipeline"
)

var runCMD = &cobra.Command{
	Use:   "run",
	Short: "Run the full ETL pipeline against the configured input file",
	Long:  `Parse, validate, derive indicators, bulk-load into Postgres, and emit a columnar file, using settings from the environment.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.WithError(err).Fatal("failed to load configuration")
		}
		applyLogLevel(cfg)

		report, err := pipeline.Run(context.Background(), cfg, log)
		if err != nil {
			log.WithError(err).Error("pipeline run failed")
			cobra.CheckErr(err)
			return
		}

		fmt.Println(report)
	},
}
