// Package seed generates demo records, submits them to a running SkillPort
// server and verifies the server's leaderboard against a ranking computed
// locally from the same data.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL              string        // Base URL of the service
	Members              int           // Number of members to create
	SubmissionsPerMember int           // Upper bound of submissions per member
	Skills               int           // Number of owner skills to create
	Replays              int           // Submissions re-sent with their Idempotency-Key
	Workers              int           // Number of concurrent workers
	Timeout              time.Duration // HTTP request timeout
	Seed                 uint64        // Generator seed; equal seeds give equal data
	OutputFile           string        // Optional JSON dump of the generated records
	Verbose              bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	MembersCreated     int
	SubmissionsCreated int
	SkillsCreated      int
	Duplicates         int
	Failed             int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}

// outcome classifies one create request.
type outcome int

const (
	created outcome = iota
	duplicate
	failed
)
