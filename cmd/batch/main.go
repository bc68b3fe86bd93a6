package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/getsentry/sentry-go"
	"github.com/guardiancapital/ledgerhub/db"
	"github.com/guardiancapital/ledgerhub/lib/logging"
	"github.com/guardiancapital/ledgerhub/lib/service"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// one-shot runner for the batch sweeps, meant to be driven by cron
func main() {
	job := flag.String("job", "", "sweep to run: interest or maintenance")
	flag.Parse()

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	svc := &service.LedgerService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}

	ctx := context.Background()
	var result *service.BatchResult
	switch *job {
	case "interest":
		result, err = svc.AccrueDailyInterest(ctx)
	case "maintenance":
		result, err = svc.ChargeMonthlyMaintenance(ctx)
	default:
		logger.Fatalf("Unknown job %q, want interest or maintenance", *job)
	}
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatalf("Sweep %s failed: %v", *job, err)
	}
	logger.Infof("Sweep %s done: %d processed, %d skipped, %d failures", *job, result.Processed, result.Skipped, len(result.Failures))
	for _, failure := range result.Failures {
		logger.Warnf("Sweep %s user %d: %s", *job, failure.UserID, failure.Reason)
	}
}
