package ports

import (
	"context"
	"time"

	"go.trai.ch/rollout/internal/core/domain"
)

// JobService is the remote job-execution service.
//
//go:generate mockgen -source=job_service.go -destination=mocks/mock_job_service.go -package=mocks
type JobService interface {
	// Authenticate exchanges credentials for a session.
	Authenticate(ctx context.Context, username, password string) (domain.Session, error)

	// RunJob triggers a job now and returns its execution id.
	// An empty id means the service did not start the job.
	RunJob(ctx context.Context, session domain.Session, req domain.JobRequest) (string, error)

	// ScheduleJob schedules a job to run at the given time and returns the execution id, if any.
	ScheduleJob(ctx context.Context, session domain.Session, req domain.JobRequest, at time.Time) (string, error)

	// ExecutionStatus reports the current status of an execution.
	ExecutionStatus(ctx context.Context, session domain.Session, executionID string) (domain.ExecutionStatus, error)
}
