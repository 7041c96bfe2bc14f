package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NikhilTalatule/MarketStream-ETL/generate"
)

var (
	generateSeed uint64
	generateOut  string
)

var generateCMD = &cobra.Command{
	Use:   "generate-data [rows]",
	Short: "Generate a synthetic trade CSV file for testing",
	Long:  `Write a CSV file of synthetic exchange trade rows, using a per-symbol random walk, for stress testing or local development.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rows := 1_000_000
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				log.WithError(err).Fatal("rows must be an integer")
			}
			rows = n
		}

		opts := generate.Options{NumTrades: rows, Seed: generateSeed}
		if err := generate.Generate(generateOut, opts); err != nil {
			log.WithError(err).Fatal("failed to generate synthetic data")
		}
		log.WithField("rows", rows).WithField("path", generateOut).Info("generated synthetic trade data")
	},
}

func init() {
	generateCMD.Flags().Uint64Var(&generateSeed, "seed", 42, "random seed for reproducible output")
	generateCMD.Flags().StringVar(&generateOut, "out", "trades.csv", "output CSV file path")
}
