package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/skillport/internal/seed"
)

// Default configuration constants.
const (
	defaultMembers     = 50
	defaultSubmissions = 20
	defaultSkills      = 12
	defaultReplays     = 25
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		members     = flag.Int("members", defaultMembers, "Number of members to create")
		submissions = flag.Int("submissions", defaultSubmissions, "Maximum submissions per member")
		skills      = flag.Int("skills", defaultSkills, "Number of owner skills to create")
		replays     = flag.Int("replays", defaultReplays, "Submissions re-sent with the same Idempotency-Key")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		genSeed     = flag.Uint64("seed", 1, "Generator seed")
		outputFile  = flag.String("output", "", "Write the generated records as JSON to this file")
		logFile     = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:              *baseURL,
		Members:              *members,
		SubmissionsPerMember: *submissions,
		Skills:               *skills,
		Replays:              *replays,
		Workers:              *workers,
		Timeout:              *timeout,
		Seed:                 *genSeed,
		OutputFile:           *outputFile,
		Verbose:              *verbose,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
