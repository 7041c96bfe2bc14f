// Package pipeline is the driver: it stages Parser → Validator →
// (Indicator engine) and (Database sink + Columnar writer in parallel),
// timing every stage and reporting exit-code semantics per §6.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/NikhilTalatule/MarketStream-ETL/bench"
	"github.com/NikhilTalatule/MarketStream-ETL/columnar"
	"github.com/NikhilTalatule/MarketStream-ETL/config"
	"github.com/NikhilTalatule/MarketStream-ETL/indicator"
	"github.com/NikhilTalatule/MarketStream-ETL/loader"
	"github.com/NikhilTalatule/MarketStream-ETL/parser"
	"github.com/NikhilTalatule/MarketStream-ETL/pool"
	"github.com/NikhilTalatule/MarketStream-ETL/store"
	"github.com/NikhilTalatule/MarketStream-ETL/validate"
)

// Run executes one full pipeline pass against cfg and returns the rendered
// performance report. A non-nil error means the run is a fatal, non-zero
// exit: the caller should print it as a single critical-error line.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Logger) (string, error) {
	collector := bench.NewCollector()

	parseStop := collector.Scope("Parse", 0)
	records, err := parser.ParseFile(cfg.InputPath)
	parseStop()
	if err != nil {
		return "", fmt.Errorf("pipeline: parse: %w", err)
	}
	log.WithField("records", len(records)).Info("pipeline: parsed input")

	validateStop := collector.Scope("Validate", int64(len(records)))
	clean := validate.Batch(records, log)
	validateStop()
	log.WithFields(logrus.Fields{"valid": len(clean), "input": len(records)}).Info("pipeline: validated input")

	indicatorStop := collector.Scope("Indicators", int64(len(clean)))
	rows := indicator.ComputeAll(clean, cfg.IndicatorPeriod)
	indicatorStop()
	log.WithField("symbols", len(rows)).Info("pipeline: computed indicators")

	gormDB, err := store.OpenGORM(cfg.ConnectionString)
	if err != nil {
		return "", fmt.Errorf("pipeline: connect: %w", err)
	}
	if err := store.InitSchema(gormDB, log); err != nil {
		return "", fmt.Errorf("pipeline: init schema: %w", err)
	}

	dbPool, err := pgxpool.New(ctx, cfg.ConnectionString)
	if err != nil {
		return "", fmt.Errorf("pipeline: connect: %w", err)
	}
	defer dbPool.Close()

	workers := pool.New(cfg.WorkerCount)
	defer workers.Shutdown()

	var loadResult loader.Result
	var loadErr error
	var writeErr error

	loadStop := collector.Scope("ParallelLoad", int64(len(clean)))
	columnarStop := collector.Scope("ColumnarWrite", int64(len(clean)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		loadResult, loadErr = loader.Run(ctx, workers, dbPool, cfg.ConnectionString, clean, rows, cfg.WorkerCount, log)
		loadStop()
	}()

	outputPath := columnar.OutputPath(cfg.ParquetDir, time.Now())
	writeErr = columnar.Write(clean, outputPath)
	columnarStop()

	<-done

	if loadErr != nil {
		return "", fmt.Errorf("pipeline: parallel load: %w", loadErr)
	}
	if writeErr != nil {
		return "", fmt.Errorf("pipeline: columnar write: %w", writeErr)
	}

	log.WithFields(logrus.Fields{
		"trades_copied":    loadResult.TradesCopied,
		"indicators_saved": loadResult.IndicatorsSaved,
		"parquet_file":     outputPath,
	}).Info("pipeline: run complete")

	return bench.Report(collector.Results()), nil
}
