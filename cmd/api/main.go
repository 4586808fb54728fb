package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/calendar"
	"github.com/hamed0406/endpointwatch/internal/config"
	"github.com/hamed0406/endpointwatch/internal/httpapi"
	"github.com/hamed0406/endpointwatch/internal/httpapi/middleware"
	"github.com/hamed0406/endpointwatch/internal/logging"
	"github.com/hamed0406/endpointwatch/internal/metrics"
	"github.com/hamed0406/endpointwatch/internal/notify"
	"github.com/hamed0406/endpointwatch/internal/probe"
	"github.com/hamed0406/endpointwatch/internal/repo"
	"github.com/hamed0406/endpointwatch/internal/repo/filestore"
	"github.com/hamed0406/endpointwatch/internal/repo/memory"
	pg "github.com/hamed0406/endpointwatch/internal/repo/postgres"
	"github.com/hamed0406/endpointwatch/internal/repo/sqlite"
	"github.com/hamed0406/endpointwatch/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store_open_error", zap.Error(err))
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	fetcher := probe.NewChain(probe.ChainConfig{
		Timeout:  cfg.HTTPTimeout,
		MaxBody:  cfg.MaxBodyBytes,
		Attempts: cfg.RetryAttempts,
		Backoff:  cfg.RetryBackoff,
	}, logger)

	var calOpts []calendar.Option
	if cfg.GoodFriday {
		calOpts = append(calOpts, calendar.WithGoodFriday())
	}
	if cfg.DayBeforeXmasEve {
		calOpts = append(calOpts, calendar.WithDayBeforeChristmasEve())
	}
	cal, err := calendar.Parse(strings.Join(cfg.Holidays, ","), calOpts...)
	if err != nil {
		logger.Warn("holidays_parse_error", zap.Error(err))
		cal = calendar.New(calOpts...)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("timezone_error", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	notifiers := notify.Multi{notify.Log(func(subject, text string) {
		logger.Info("alarm", zap.String("subject", subject), zap.String("text", text))
	})}
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		notifiers = append(notifiers, s)
	}
	gate := &notify.Gate{Calendar: cal, Location: loc, State: store}
	alerter := scheduler.NewAlerter(logger, store, notifiers, gate)

	runner := scheduler.NewRunner(logger, scheduler.FileLoader(cfg.EndpointsFile), fetcher, store, alerter, cfg.CheckInterval)
	runner.Metrics = m
	runner.MaxLevel = cfg.MaxLevel
	runner.MinItems = cfg.MinItems
	runner.CycleCheck = cfg.CycleCheck
	if cfg.FallbackEndpointsFile != "" {
		runner.Fallback = scheduler.FileLoader(cfg.FallbackEndpointsFile)
	}

	api := httpapi.NewServer(logger, runner.Load, store, runner)
	api.Gatherer = reg
	api.Keys = middleware.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
	api.PublicRPM = cfg.PublicRPM
	api.PublicBurst = cfg.PublicBurst

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go runner.Run(ctx)

	go func() {
		logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.String("endpoints_file", cfg.EndpointsFile),
			zap.Duration("interval", cfg.CheckInterval),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_listen_error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}
	logger.Info("api_stopped")
}

// openStore picks postgres, then sqlite, then the results directory, and
// falls back to memory.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		s, err := pg.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		logger.Info("store_selected", zap.String("kind", "postgres"))
		return s, nil
	case cfg.SQLitePath != "":
		logger.Info("store_selected", zap.String("kind", "sqlite"), zap.String("path", cfg.SQLitePath))
		return sqlite.Open(cfg.SQLitePath)
	case cfg.ResultsDir != "":
		logger.Info("store_selected", zap.String("kind", "filestore"), zap.String("dir", cfg.ResultsDir))
		return filestore.New(cfg.ResultsDir)
	default:
		logger.Info("store_selected", zap.String("kind", "memory"))
		return memory.New(), nil
	}
}
