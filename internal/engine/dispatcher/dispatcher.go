// Package dispatcher triggers deployment jobs for each requested environment.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Request describes one dispatch phase.
type Request struct {
	Topology     *domain.Topology
	Environments []string
	BuildType    domain.BuildType
	Mode         domain.DispatchMode
	// Delay is added to the current time once per run in schedule mode.
	Delay time.Duration
	// Options are forwarded to every job as job options.
	Options map[string]string
	// Wait follows each triggered execution with the watcher in run mode.
	Wait   bool
	Budget domain.WatchBudget
}

// Dispatcher fans a deployment out to environments.
type Dispatcher struct {
	jobs        ports.JobService
	watcher     ports.ExecutionWatcher
	logger      ports.Logger
	telemetry   ports.Telemetry
	credentials domain.ServiceSettings
	parallelism int
	now         func() time.Time
}

// New creates a Dispatcher.
func New(
	jobs ports.JobService,
	watcher ports.ExecutionWatcher,
	logger ports.Logger,
	telemetry ports.Telemetry,
	settings domain.Settings,
) *Dispatcher {
	return &Dispatcher{
		jobs:        jobs,
		watcher:     watcher,
		logger:      logger,
		telemetry:   telemetry,
		credentials: settings.Service,
		parallelism: max(settings.Parallelism, 1),
		now:         time.Now,
	}
}

type work struct {
	environment string
	target      domain.EnvironmentTarget
	configured  bool
	// conflictsWith names an earlier environment that owns the same run-state keys.
	conflictsWith string
}

// Dispatch triggers the job for every requested environment and returns one
// outcome per environment in request order. Only a failed authentication is
// returned as an error; everything else is reported per environment.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) ([]domain.Outcome, error) {
	if req.Topology == nil {
		return nil, domain.ErrConfigNotFound
	}

	environments := req.Topology.DispatchEnvironments(req.Environments)
	if len(environments) == 0 {
		return nil, domain.ErrNoEnvironments
	}

	conflicts := domain.KeyConflicts(environments)
	items := make([]work, len(environments))
	resolved := false
	for i, env := range environments {
		if owner, ok := conflicts[env]; ok {
			items[i] = work{environment: env, conflictsWith: owner}
			continue
		}
		target, ok := req.Topology.Target(env, req.BuildType)
		items[i] = work{environment: env, target: target, configured: ok}
		resolved = resolved || ok
	}

	var session domain.Session
	if resolved {
		var err error
		session, err = d.jobs.Authenticate(ctx, d.credentials.Username, d.credentials.Password)
		if err != nil {
			return nil, zerr.With(err, "url", d.credentials.URL)
		}
	}

	runAt := d.now().Add(req.Delay)
	if req.Mode == domain.ModeSchedule {
		d.logger.Info(fmt.Sprintf("scheduling deployments for %s", runAt.Format(domain.ScheduleTimeLayout)))
	}

	outcomes := make([]domain.Outcome, len(items))
	var g errgroup.Group
	g.SetLimit(d.parallelism)

	for i, item := range items {
		g.Go(func() error {
			outcomes[i] = d.dispatchOne(ctx, session, req, item, runAt)
			return nil
		})
	}
	// Workers report failures through their outcomes, so Wait never fails.
	_ = g.Wait()

	return outcomes, nil
}

func (d *Dispatcher) dispatchOne(
	ctx context.Context,
	session domain.Session,
	req Request,
	item work,
	runAt time.Time,
) domain.Outcome {
	name := displayName(item.environment)
	ctx, vertex := d.telemetry.Record(ctx, "deploy "+name)

	outcome := d.deploy(ctx, session, req, item, runAt, vertex)
	if outcome.Err != nil {
		d.logger.Warn(fmt.Sprintf("%s: %s", name, outcome.Err.Error()))
	}
	vertex.Complete(outcome.Err)
	return outcome
}

func (d *Dispatcher) deploy(
	ctx context.Context,
	session domain.Session,
	req Request,
	item work,
	runAt time.Time,
	vertex ports.Vertex,
) domain.Outcome {
	env := item.environment
	name := displayName(env)
	outcome := domain.Outcome{Environment: env}

	if item.conflictsWith != "" {
		outcome.Failure = domain.FailureKeyConflict
		outcome.Err = zerr.With(zerr.With(domain.ErrEnvironmentKeyConflict,
			"environment", name), "conflicts_with", item.conflictsWith)
		return outcome
	}

	if !item.configured {
		outcome.Failure = domain.FailureNotConfigured
		outcome.Err = zerr.With(zerr.With(domain.ErrEnvironmentNotConfigured,
			"environment", name), "build_type", req.BuildType.String())
		return outcome
	}

	outcome.JobName = item.target.JobName
	argString := item.target.ArgString()
	if argString == "" {
		d.logger.Warn(fmt.Sprintf("%s: job %s has no nodes", name, item.target.JobName))
	}

	jobReq := domain.JobRequest{
		JobName:   item.target.JobName,
		ArgString: argString,
		Options:   req.Options,
	}

	var (
		id  string
		err error
	)
	if req.Mode == domain.ModeSchedule {
		id, err = d.jobs.ScheduleJob(ctx, session, jobReq, runAt)
	} else {
		id, err = d.jobs.RunJob(ctx, session, jobReq)
	}

	if err != nil {
		outcome.Failure = domain.FailureDispatch
		outcome.Err = zerr.With(zerr.Wrap(err, domain.ErrDispatchFailed.Error()), "job", item.target.JobName)
		return outcome
	}

	if req.Mode == domain.ModeSchedule {
		outcome.ExecutionID = id
		outcome.Status = domain.StatusScheduled
		vertex.Log(fmt.Sprintf("job %s scheduled at %s", item.target.JobName, runAt.Format(domain.ScheduleTimeLayout)))
		d.logger.Info(fmt.Sprintf("%s: scheduled job %s", name, item.target.JobName))
		return outcome
	}

	if id == "" {
		outcome.Failure = domain.FailureDispatch
		outcome.Err = zerr.With(domain.ErrDispatchFailed, "job", item.target.JobName)
		return outcome
	}

	outcome.ExecutionID = id
	outcome.Status = domain.StatusRunning
	vertex.Log(fmt.Sprintf("job %s started execution %s", item.target.JobName, id))
	d.logger.Info(fmt.Sprintf("%s: job %s started execution %s", name, item.target.JobName, id))

	if !req.Wait {
		return outcome
	}

	res := d.watcher.Watch(ctx, session, id, req.Budget)
	outcome.Status = res.Status
	outcome.Err = res.Err
	vertex.Log(fmt.Sprintf("execution %s %s after %d polls", id, res.Status, res.Polls))

	switch res.Status {
	case domain.StatusSucceeded:
		outcome.Err = nil
		d.logger.Info(fmt.Sprintf("%s: execution %s succeeded", name, id))
	case domain.StatusTimedOut:
		outcome.Failure = domain.FailureTimeout
	case domain.StatusUnknown:
		outcome.Failure = domain.FailureTransport
	default:
		outcome.Failure = domain.FailureExecution
	}
	return outcome
}

// displayName names an environment in logs.
func displayName(env string) string {
	if env == domain.InlineEnvironment {
		return "inline"
	}
	return env
}
