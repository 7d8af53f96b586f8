package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/budgetbot/ynab-reporter/internal/integrations/ynab"
	"github.com/budgetbot/ynab-reporter/internal/render"
	"github.com/budgetbot/ynab-reporter/internal/server"
	"github.com/budgetbot/ynab-reporter/internal/service"
	"github.com/budgetbot/ynab-reporter/internal/utils/email"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	client := ynab.NewClient(cfg, logger)
	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(client, renderer, sender, logger, cfg)

	// One-shot commands for manual runs
	if len(os.Args) > 1 {
		if err := runOnce(svc, os.Args[1]); err != nil {
			logger.Fatalf("Report failed: %v", err)
		}
		return
	}

	// Scheduled runs; a failed run is logged and the next one still fires
	c := cron.New()
	mustSchedule(c, logger, "30 7 * * *", "daily alert", svc.SendDailyAlert)
	mustSchedule(c, logger, "0 8 * * 1", "weekly recap", svc.SendWeeklyRecap)
	mustSchedule(c, logger, "0 8 1 * *", "monthly recap", svc.SendMonthlyRecap)
	c.Start()
	logger.Infof("Scheduler started: daily 07:30, weekly Mon 08:00, monthly 1st 08:00 (threshold %.0f%%)", cfg.ThresholdPercent)

	// Preview server
	srv := server.NewServer(svc, renderer, logger)
	addr := fmt.Sprintf(":%s", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Infof("Starting preview server on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

func runOnce(svc *service.Service, command string) error {
	switch command {
	case "daily":
		return svc.SendDailyAlert()
	case "weekly":
		return svc.SendWeeklyRecap()
	case "monthly":
		return svc.SendMonthlyRecap()
	case "test":
		if err := svc.SendDailyAlert(); err != nil {
			return err
		}
		if err := svc.SendWeeklyRecap(); err != nil {
			return err
		}
		return svc.SendMonthlyRecap()
	default:
		return fmt.Errorf("unknown command %q (expected daily, weekly, monthly or test)", command)
	}
}

func mustSchedule(c *cron.Cron, logger *logrus.Logger, spec, name string, job func() error) {
	_, err := c.AddFunc(spec, func() {
		if err := job(); err != nil {
			logger.Errorf("Failed to send %s: %v", name, err)
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule %s: %v", name, err)
	}
}
