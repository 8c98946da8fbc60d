package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CycleSentinel/internal/collector"
	"CycleSentinel/internal/config"
	"CycleSentinel/internal/handler"
	"CycleSentinel/internal/logging"
	"CycleSentinel/internal/notifier"
	"CycleSentinel/internal/recorder"
	"CycleSentinel/internal/scheduler"
	"CycleSentinel/internal/store"
	"CycleSentinel/internal/strategy"
	"CycleSentinel/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("load config")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	log := logging.Component(logger, "main")
	log.Info("CycleSentinel starting...")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("config validation")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx, cfg.Tracing.Enabled)
	if err != nil {
		log.WithError(err).Fatal("init tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("shutdown tracer provider")
		}
	}()

	fetcher, closeCache, err := collector.NewFromConfig(cfg, tracer, logging.Component(logger, "collector"))
	if err != nil {
		log.WithError(err).Fatal("init data providers")
	}
	defer closeCache()
	log.WithField("source", fetcher.Name()).Info("data source ready")
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Bars, logging.Component(logger, "collector"))

	halvings, err := cfg.HalvingDates()
	if err != nil {
		log.WithError(err).Fatal("parse halving dates")
	}
	engine := strategy.NewEngine(halvings)

	st, err := store.New(cfg.Store.StateFile, logging.Component(logger, "store"))
	if err != nil {
		log.WithError(err).Fatal("load latest analysis")
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logging.Component(logger, "recorder"))
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logging.Component(logger, "notifier"))
	if err != nil {
		log.WithError(err).Fatal("init telegram notifier")
	}

	sched := scheduler.NewScheduler(ctx, col, engine, st, rec, tn, cfg.Report.OutputPath, logging.Component(logger, "scheduler"))
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.WithError(err).Fatal("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing analysis now")
		go func() {
			if _, err := sched.RunNow(ctx); err != nil {
				log.WithError(err).Error("startup analysis failed")
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware("cycle-sentinel"))
	handler.New(tracer, st, rec).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http listen")
		}
	}()
	log.WithField("addr", cfg.HTTP.Addr).Info("CycleSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server forced to shutdown")
	}
	log.Info("CycleSentinel stopped")
}
