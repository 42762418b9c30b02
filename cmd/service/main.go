package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-planner-service/internal/client"
	"github.com/kjstillabower/weather-planner-service/internal/config"
	httphandler "github.com/kjstillabower/weather-planner-service/internal/http"
	"github.com/kjstillabower/weather-planner-service/internal/lifecycle"
	"github.com/kjstillabower/weather-planner-service/internal/location"
	"github.com/kjstillabower/weather-planner-service/internal/observability"
	"github.com/kjstillabower/weather-planner-service/internal/planner"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	forecastClient, err := client.NewOpenMeteoClient(
		cfg.ForecastAPIURL,
		cfg.ForecastAPITimeout,
		cfg.ForecastDays,
	)
	if err != nil {
		logger.Fatal("forecast client", zap.Error(err))
	}

	var locations location.Provider
	if cfg.HasDefaultLocation {
		locations = location.NewStatic(cfg.DefaultLatitude, cfg.DefaultLongitude)
		logger.Info("default location configured",
			zap.Float64("latitude", cfg.DefaultLatitude),
			zap.Float64("longitude", cfg.DefaultLongitude))
	} else {
		locations = location.Denied{}
		logger.Info("no default location; requests must carry lat/lon")
	}

	session := planner.NewSession(forecastClient, logger, cfg.WindowCount, cfg.MinSeparation)
	session.SetCalendarFunc(planner.LogCalendar(logger))

	healthConfig := &httphandler.HealthConfig{
		DegradedWindow:   cfg.DegradedWindow,
		DegradedErrorPct: cfg.DegradedErrorPct,
		StartTime:        time.Now(),
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	handler := httphandler.NewHandler(session, locations, healthConfig, logger, limiter, cfg.IntentMaxLength)

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	router.HandleFunc("/intents", handler.GetIntents).Methods("GET")

	planRouter := router.PathPrefix("/plan").Subrouter()
	planRouter.Use(httphandler.RateLimitMiddleware(limiter))
	planRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	planRouter.HandleFunc("", handler.GetPlan).Methods("GET")
	planRouter.HandleFunc("/days/{day}", handler.GetDay).Methods("GET")

	router.Handle("/calendar",
		httphandler.RateLimitMiddleware(limiter)(http.HandlerFunc(handler.PostCalendar))).Methods("POST")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
