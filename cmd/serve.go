package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NikhilTalatule/MarketStream-ETL/api"
	"github.com/NikhilTalatule/MarketStream-ETL/config"
	"github.com/NikhilTalatule/MarketStream-ETL/store"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-side API server",
	Long:  `Start the HTTP API server exposing trade stats and the latest computed indicators.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.WithError(err).Fatal("failed to load configuration")
		}
		applyLogLevel(cfg)

		db, err := store.OpenGORM(cfg.ConnectionString)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		if err := store.InitSchema(db, log); err != nil {
			log.WithError(err).Fatal("failed to initialize schema")
		}

		r := api.SetupRoutes(db)

		const addr = ":8080"
		log.WithField("addr", addr).Info("starting API server")
		if err := r.Run(addr); err != nil {
			log.WithError(err).Fatal("API server exited")
		}
	},
}
