package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/config"
	"github.com/manmeet1049/bizzler/database"
	routes "github.com/manmeet1049/bizzler/internal/app/http"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/app/jobs"
	"github.com/manmeet1049/bizzler/internal/infra/stripe"
	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/service"
	"github.com/manmeet1049/bizzler/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.LoadEnv()

	appLog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB(cfg.DBURL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	params := service.ServiceParams{
		Store:       repository.NewStore(db),
		Logger:      appLog,
		Config:      cfg,
		Metrics:     metrics.New(reg),
		Clock:       types.SystemClock,
		PriceSource: stripe.NewPriceSource(cfg.StripeSecretKey, cfg.StripeProductID),
	}

	if cfg.SweepEnabled {
		scheduler, err := jobs.NewScheduler(cfg.SweepSchedule, service.NewSweeperService(params), appLog)
		if err != nil {
			appLog.Fatalw("invalid sweep schedule", "schedule", cfg.SweepSchedule, "error", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.LoggingMiddleware(appLog))

	// CORS must be in place before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.BusinessHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: cfg.CORSOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, params, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Infow("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatalw("server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	appLog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Errorw("graceful shutdown failed", "error", err)
	}
}
