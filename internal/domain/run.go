package domain

import "time"

// RunStats holds the outcome of one ETL run.
type RunStats struct {
	Source   string
	Fetched  int
	Loaded   int
	Duration time.Duration
}
