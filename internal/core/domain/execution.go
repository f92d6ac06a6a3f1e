package domain

import (
	"strings"
	"time"
)

// ExecutionStatus is the observed state of a remote job execution.
type ExecutionStatus string

// Execution states. TimedOut and Unknown are produced locally by the watcher.
const (
	StatusScheduled ExecutionStatus = "scheduled"
	StatusRunning   ExecutionStatus = "running"
	StatusSucceeded ExecutionStatus = "succeeded"
	StatusFailed    ExecutionStatus = "failed"
	StatusTimedOut  ExecutionStatus = "timed_out"
	StatusUnknown   ExecutionStatus = "unknown"
)

// ParseExecutionStatus maps a status reported by the job service.
// Values other than scheduled, running and succeeded are failures.
func ParseExecutionStatus(s string) ExecutionStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled
	case "running":
		return StatusRunning
	case "succeeded":
		return StatusSucceeded
	case "":
		return StatusUnknown
	default:
		return StatusFailed
	}
}

// InProgress reports whether the execution may still change state.
func (s ExecutionStatus) InProgress() bool {
	return s == StatusScheduled || s == StatusRunning
}

// DispatchMode selects between running a job now and scheduling it.
type DispatchMode string

const (
	// ModeRun triggers the job immediately and watches it.
	ModeRun DispatchMode = "run"
	// ModeSchedule schedules the job at now + deploy delay.
	ModeSchedule DispatchMode = "schedule"
)

// ScheduleTimeLayout is the wall-clock format of the scheduled run time.
const ScheduleTimeLayout = "2006-01-02T15:04:05"

// Session is an authenticated job-service session. It is read-only once acquired.
type Session struct {
	Token string
}

// JobRequest describes one call to the job service.
type JobRequest struct {
	JobName   string
	ArgString string
	Options   map[string]string
}

// WatchBudget bounds how long an execution is watched.
type WatchBudget struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Default watch budget.
const (
	DefaultWatchTimeout  = 600 * time.Second
	DefaultWatchInterval = 60 * time.Second
	minWatchDuration     = time.Second
)

// DefaultWatchBudget returns the default budget.
func DefaultWatchBudget() WatchBudget {
	return WatchBudget{Timeout: DefaultWatchTimeout, Interval: DefaultWatchInterval}
}

// Normalize clamps both durations to at least one second.
func (b WatchBudget) Normalize() WatchBudget {
	if b.Timeout < minWatchDuration {
		b.Timeout = minWatchDuration
	}
	if b.Interval < minWatchDuration {
		b.Interval = minWatchDuration
	}
	return b
}

// WatchResult is the final state observed by the watcher.
type WatchResult struct {
	Status ExecutionStatus
	Polls  int
	Err    error
}
