// Package app implements the application layer for rollout.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports"
	"go.trai.ch/rollout/internal/engine/dispatcher"
	"go.trai.ch/zerr"
)

// Dispatcher fans a deployment out to environments.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatcher.Request) ([]domain.Outcome, error)
}

// Recorder writes run results back into the run state.
type Recorder interface {
	Record(ctx context.Context, path string, outcomes []domain.Outcome)
	RecordValues(ctx context.Context, path string, values map[string]string)
}

// App represents the main application logic.
type App struct {
	settings   domain.Settings
	detector   ports.BuildTypeDetector
	topology   ports.TopologyProvider
	state      ports.StateStore
	dispatcher Dispatcher
	recorder   Recorder
	executor   ports.Executor
	telemetry  ports.Telemetry
	logger     ports.Logger
	lookupEnv  func(string) (string, bool)
}

// New creates a new App instance.
func New(
	settings domain.Settings,
	detector ports.BuildTypeDetector,
	topology ports.TopologyProvider,
	state ports.StateStore,
	dispatch Dispatcher,
	rec Recorder,
	executor ports.Executor,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		settings:   settings,
		detector:   detector,
		topology:   topology,
		state:      state,
		dispatcher: dispatch,
		recorder:   rec,
		executor:   executor,
		telemetry:  telemetry,
		logger:     log,
		lookupEnv:  os.LookupEnv,
	}
}

// WithLookupEnv replaces the process environment used for run-state overrides.
func (a *App) WithLookupEnv(lookup func(string) (string, bool)) *App {
	a.lookupEnv = lookup
	return a
}

// WorkspaceOptions locate the workspace and its run-state file.
type WorkspaceOptions struct {
	Workspace string
	// StateFile overrides the configured run-state file. Relative paths are
	// resolved against Workspace.
	StateFile string
}

// DeployOptions configure Deploy.
type DeployOptions struct {
	WorkspaceOptions
	Mode   domain.DispatchMode
	NoWait bool
	Strict bool
}

// Deploy dispatches the deployment job for every requested environment and
// records the outcomes. Environments that fail do not fail the run unless
// Strict is set.
//
//nolint:cyclop // orchestration function
func (a *App) Deploy(ctx context.Context, opts DeployOptions) error {
	if a.settings.Service.URL == "" {
		return zerr.With(domain.ErrSettingsInvalid, "field", "service.url")
	}

	statePath := a.statePath(opts.WorkspaceOptions)
	state, err := a.loadState(statePath)
	if err != nil {
		return err
	}

	buildType := a.detectBuildType(opts.Workspace)

	topology, err := a.topology.Resolve(state)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve topology")
	}

	req := dispatcher.Request{
		Topology:     topology,
		Environments: state.Environments(),
		BuildType:    buildType,
		Mode:         opts.Mode,
		Options:      state.JobOptions(),
		Wait:         !opts.NoWait && opts.Mode == domain.ModeRun,
		Budget:       a.settings.Watch,
	}
	if opts.Mode == domain.ModeSchedule {
		d, err := domain.ParseDeployDelay(state.Get(domain.KeyDeployDelay))
		if err != nil {
			return err
		}
		req.Delay = d
	}

	a.logger.Info(fmt.Sprintf("deploying %s build to %s", buildType, describeTarget(topology, req.Environments, req.Delay)))

	outcomes, err := a.dispatcher.Dispatch(ctx, req)
	_ = a.telemetry.Close()
	if err != nil {
		return err
	}

	a.recorder.Record(ctx, statePath, outcomes)

	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded() {
			failed++
		}
	}
	a.logger.Info(fmt.Sprintf("%d of %d environments deployed", len(outcomes)-failed, len(outcomes)))

	if failed > 0 && opts.Strict {
		return zerr.With(domain.ErrDeploymentIncomplete, "failed_environments", failed)
	}
	return nil
}

// Detect returns the build type of the workspace and optionally records it
// in the run state.
func (a *App) Detect(ctx context.Context, opts WorkspaceOptions, record bool) domain.BuildType {
	buildType := a.detectBuildType(opts.Workspace)
	if record {
		a.recorder.RecordValues(ctx, a.statePath(opts), map[string]string{
			domain.KeyBuildType: buildType.String(),
		})
	}
	return buildType
}

// Build runs the configured build command for the detected build type with
// the run state exported as environment variables.
func (a *App) Build(ctx context.Context, opts WorkspaceOptions) error {
	statePath := a.statePath(opts)
	state, err := a.loadState(statePath)
	if err != nil {
		return err
	}

	buildType := a.detectBuildType(opts.Workspace)

	args, ok := a.settings.BuildCommands[buildType]
	if !ok || len(args) == 0 {
		return zerr.With(domain.ErrBuildCommandMissing, "build_type", buildType.String())
	}

	vars := make(map[string]string, len(state)+1)
	for k, v := range state {
		vars[k] = v
	}
	vars[domain.KeyBuildType] = buildType.String()

	cmd := &domain.Command{
		Args:        expandArgs(args, vars),
		WorkingDir:  opts.Workspace,
		Environment: vars,
	}

	a.logger.Info(fmt.Sprintf("building %s workspace: %s", buildType, cmd.Args[0]))

	_, vertex := a.telemetry.Record(ctx, "build "+buildType.String())
	err = a.executor.Execute(ctx, cmd, vertex.Stdout(), vertex.Stdout())
	vertex.Complete(err)
	_ = a.telemetry.Close()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "build_type", buildType.String())
	}

	a.recorder.RecordValues(ctx, statePath, map[string]string{
		domain.KeyBuildType: buildType.String(),
	})
	return nil
}

func (a *App) detectBuildType(workspace string) domain.BuildType {
	if workspace == "" {
		workspace = "."
	}
	return a.detector.Detect(workspace)
}

func (a *App) loadState(path string) (domain.RunState, error) {
	state, err := a.state.Load(path)
	if err != nil {
		return nil, err
	}
	return state.WithOverrides(a.lookupEnv), nil
}

func (a *App) statePath(opts WorkspaceOptions) string {
	path := opts.StateFile
	if path == "" {
		path = a.settings.StateFile
	}
	if filepath.IsAbs(path) || opts.Workspace == "" {
		return path
	}
	return filepath.Join(opts.Workspace, path)
}

// expandArgs substitutes ${VAR} references in args. Unknown variables expand
// to the empty string.
func expandArgs(args []string, vars map[string]string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = os.Expand(arg, func(key string) string {
			return vars[key]
		})
	}
	return out
}

func describeTarget(topology *domain.Topology, environments []string, delay time.Duration) string {
	var target string
	if topology.Source() == domain.TopologyInline {
		target = "inline job"
	} else {
		target = fmt.Sprintf("%v (%s)", environments, topology.Key())
	}
	if delay > 0 {
		target += " in " + delay.String()
	}
	return target
}
