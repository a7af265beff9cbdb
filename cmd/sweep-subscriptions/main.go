// Command sweep-subscriptions runs the subscription status sweep once and
// exits, for use from an external scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/manmeet1049/bizzler/config"
	"github.com/manmeet1049/bizzler/database"
	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/service"
	"github.com/manmeet1049/bizzler/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	dbURL    = flag.String("db-url", os.Getenv("DB_URL"), "PostgreSQL connection URL")
	logLevel = flag.String("log-level", "info", "Log level")
	asOf     = flag.String("date", "", "Treat this day (YYYY-MM-DD) as today. Defaults to the current UTC date")
	timeout  = flag.Duration("timeout", 30*time.Minute, "Abort the sweep after this long")
)

func main() {
	flag.Parse()

	appLog, err := logger.New(*logLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	clock := types.Clock(types.SystemClock)
	if *asOf != "" {
		day, err := types.ParseDate("date", *asOf)
		if err != nil {
			appLog.Fatalw("invalid date", "date", *asOf, "error", err)
		}
		clock = types.FixedClock(day)
	}

	cfg := config.Default()
	cfg.DBURL = *dbURL
	db := database.InitDB(cfg.DBURL)

	sweeper := service.NewSweeperService(service.ServiceParams{
		Store:   repository.NewStore(db),
		Logger:  appLog,
		Config:  cfg,
		Metrics: metrics.New(prometheus.NewRegistry()),
		Clock:   clock,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := sweeper.Sweep(ctx)
	if err != nil {
		appLog.Fatalw("sweep failed", "error", err)
	}
	if report.Failed > 0 {
		appLog.Warnw("sweep finished with failed rows", "failed", report.Failed)
		os.Exit(1)
	}
}
