package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no topology resource exists for the project key
	// and no inline override is present.
	ErrConfigNotFound = zerr.New("deployment topology not found")

	// ErrConfigReadFailed is returned when a topology resource exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read deployment topology")

	// ErrConfigParseFailed is returned when a topology resource cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse deployment topology")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsInvalid is returned when the settings file contains invalid values.
	ErrSettingsInvalid = zerr.New("invalid settings")

	// ErrInvalidDeployDelay is returned when DEPLOY_DELAY is not of the form <int><h|m>.
	ErrInvalidDeployDelay = zerr.New("invalid deploy delay, expected <number><h|m>")

	// ErrNoEnvironments is returned when no target environment was requested.
	ErrNoEnvironments = zerr.New("no environments requested, set ENV_NAME")

	// ErrAuthenticationFailed is returned when the job service rejects the credentials.
	ErrAuthenticationFailed = zerr.New("failed to authenticate with job service")

	// ErrEnvironmentNotConfigured is recorded when an environment has no job for the build type.
	ErrEnvironmentNotConfigured = zerr.New("environment not configured for build type")

	// ErrEnvironmentKeyConflict is recorded when two environment names map to the same run-state keys.
	ErrEnvironmentKeyConflict = zerr.New("environment shares run-state keys with another environment")

	// ErrDispatchFailed is recorded when the job service did not accept a job.
	ErrDispatchFailed = zerr.New("failed to trigger job")

	// ErrTransport is returned when the job service cannot be reached or answers unexpectedly.
	ErrTransport = zerr.New("job service request failed")

	// ErrWatchTimedOut is recorded when an execution did not finish within the watch budget.
	ErrWatchTimedOut = zerr.New("execution did not finish within the watch budget")

	// ErrExecutionFailed is recorded when an execution finished unsuccessfully.
	ErrExecutionFailed = zerr.New("execution failed")

	// ErrDeploymentIncomplete is returned in strict mode when any environment did not succeed.
	ErrDeploymentIncomplete = zerr.New("deployment incomplete")

	// ErrStateReadFailed is returned when the run state file cannot be read.
	ErrStateReadFailed = zerr.New("failed to read run state")

	// ErrStateWriteFailed is returned when the run state file cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write run state")

	// ErrBuildCommandMissing is returned when no build command is configured for a build type.
	ErrBuildCommandMissing = zerr.New("no build command configured for build type")

	// ErrBuildFailed is returned when the build command exits unsuccessfully.
	ErrBuildFailed = zerr.New("build command failed")
)
