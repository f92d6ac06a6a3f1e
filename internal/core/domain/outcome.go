package domain

import (
	"strings"
	"unicode"
)

// FailureKind classifies why an environment did not deploy.
type FailureKind string

// Failure kinds.
const (
	FailureNone          FailureKind = ""
	FailureNotConfigured FailureKind = "not_configured"
	FailureDispatch      FailureKind = "dispatch_failed"
	FailureTransport     FailureKind = "transport"
	FailureTimeout       FailureKind = "timeout"
	FailureExecution     FailureKind = "execution_failed"
	FailureKeyConflict   FailureKind = "key_conflict"
)

// Outcome is the result of dispatching one environment.
type Outcome struct {
	Environment string
	JobName     string
	ExecutionID string
	Status      ExecutionStatus
	Failure     FailureKind
	Err         error
}

// Succeeded reports whether the environment reached a good terminal state.
// Scheduled jobs count as succeeded once accepted.
func (o Outcome) Succeeded() bool {
	if o.Failure != FailureNone {
		return false
	}
	return o.Status == StatusSucceeded || o.Status == StatusScheduled || o.Status == StatusRunning
}

// State is the value recorded for the outcome: the failure kind for dispatch
// problems, otherwise the execution status.
func (o Outcome) State() string {
	switch o.Failure {
	case FailureNotConfigured, FailureDispatch, FailureKeyConflict:
		return string(o.Failure)
	default:
		return string(o.Status)
	}
}

// Run-state keys written for each outcome.
const (
	outcomePrefix      = "DEPLOY_"
	outcomeJobSuffix   = "JOB"
	outcomeExecSuffix  = "EXECUTION_ID"
	outcomeStateSuffix = "STATUS"
	outcomeErrSuffix   = "ERROR"
)

// Properties renders the outcome as run-state keys. The error key is always
// present so a later success clears an earlier failure.
func (o Outcome) Properties() map[string]string {
	prefix := OutcomeKeyPrefix(o.Environment)
	errMsg := ""
	if o.Err != nil {
		errMsg = strings.ReplaceAll(o.Err.Error(), "\n", " ")
	}
	return map[string]string{
		prefix + outcomeJobSuffix:   o.JobName,
		prefix + outcomeExecSuffix:  o.ExecutionID,
		prefix + outcomeStateSuffix: o.State(),
		prefix + outcomeErrSuffix:   errMsg,
	}
}

// OutcomeKeyPrefix returns the run-state key prefix for an environment,
// e.g. DEPLOY_UAT1_ for "uat1". The inline environment maps to DEPLOY_.
func OutcomeKeyPrefix(environment string) string {
	if environment == InlineEnvironment {
		return outcomePrefix
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(environment) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return outcomePrefix + b.String() + "_"
}

// KeyConflicts maps each environment whose run-state keys are already taken
// by an earlier environment in the list to that earlier environment.
// "dev" and "DEV" share DEPLOY_DEV_, so the second one conflicts.
func KeyConflicts(environments []string) map[string]string {
	owners := make(map[string]string, len(environments))
	conflicts := make(map[string]string)
	for _, env := range environments {
		prefix := OutcomeKeyPrefix(env)
		owner, taken := owners[prefix]
		switch {
		case !taken:
			owners[prefix] = env
		case owner != env:
			conflicts[env] = owner
		}
	}
	return conflicts
}
