package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/budget-service/internal/config"
	"github.com/Dan9191/budget-service/internal/handler"
	"github.com/Dan9191/budget-service/internal/metrics"
	"github.com/Dan9191/budget-service/internal/middleware"
	"github.com/Dan9191/budget-service/internal/repository"
	"github.com/Dan9191/budget-service/internal/scheduler"
	"github.com/Dan9191/budget-service/internal/service"
	"github.com/Dan9191/budget-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	metrics.Init(db)

	// Initialize layers
	repo := repository.NewRepository(db)
	var notifier service.Notifier
	if cfg.AlertsEnabled {
		notifier = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, notifier, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Background jobs
	sched := scheduler.New(logger)
	if err := sched.AddJob(cfg.RecurringSchedule, scheduler.NewRecurringDepositJob(svc, logger)); err != nil {
		logger.Fatalf("Failed to schedule recurring deposits: %v", err)
	}
	if cfg.AlertsEnabled {
		if err := sched.AddJob(cfg.AlertSchedule, scheduler.NewBufferAlertJob(svc, logger)); err != nil {
			logger.Fatalf("Failed to schedule buffer alerts: %v", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))
	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/reports/forecast", h.Forecast).Methods("GET")
	authRouter.HandleFunc("/reports/forecast/export", h.ExportForecast).Methods("GET")
	authRouter.HandleFunc("/reports/upcoming-bills", h.UpcomingBills).Methods("GET")
	authRouter.HandleFunc("/reports/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/reports/financial-health", h.FinancialHealth).Methods("GET")
	authRouter.HandleFunc("/funds/process-recurring", h.ProcessRecurring).Methods("POST")
	authRouter.HandleFunc("/funds/{id:[0-9]+}/toggle-skip", h.ToggleSkip).Methods("PATCH")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
