package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/skillport/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`SkillPort Seeder
================

Creates demo members, submissions and skills on a running server, replays
idempotency keys and verifies the leaderboard against a local ranking.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -members int
        Number of members to create (default 50)
  -submissions int
        Maximum submissions per member (default 20)
  -skills int
        Number of owner skills to create (default 12)
  -replays int
        Submissions re-sent with the same Idempotency-Key (default 25)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed uint
        Generator seed (default 1)
  -output string
        Write the generated records as JSON to this file
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed a local server
  go run ./cmd/seed

  # Larger run against another port, keeping the data
  go run ./cmd/seed -members 500 -url http://localhost:8080 -output data/seed.json
`)
}
