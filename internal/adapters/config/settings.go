// Package config loads rollout settings and deployment topologies.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the job service settings.
const (
	EnvServiceURL = "RUNDECK_URL"
	EnvUsername   = "RUNDECK_USERNAME"
	EnvPassword   = "RUNDECK_PASSWORD"
	EnvAPIVersion = "RUNDECK_API_VERSION"
	// EnvSettingsPath overrides the settings file location.
	EnvSettingsPath = "ROLLOUT_CONFIG"
)

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(string) (string, bool)

// SettingsLoader reads rollout.yaml and applies environment overrides.
type SettingsLoader struct {
	lookup LookupFunc
}

// NewSettingsLoader creates a SettingsLoader. A nil lookup uses os.LookupEnv.
func NewSettingsLoader(lookup LookupFunc) *SettingsLoader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &SettingsLoader{lookup: lookup}
}

// Path returns the settings file path, honoring ROLLOUT_CONFIG.
func (l *SettingsLoader) Path() string {
	if p, ok := l.lookup(EnvSettingsPath); ok && p != "" {
		return p
	}
	return domain.DefaultSettingsFile
}

// Load reads the settings file at path. A missing file yields the defaults.
// The result is normalized.
func (l *SettingsLoader) Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	default:
		var file settingsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsInvalid.Error()), "path", path)
		}
		if err := apply(&settings, &file); err != nil {
			return domain.Settings{}, zerr.With(err, "path", path)
		}
	}

	if err := l.applyEnv(&settings); err != nil {
		return domain.Settings{}, err
	}

	return settings.Normalize(), nil
}

func apply(s *domain.Settings, f *settingsFile) error {
	if f.Service.URL != "" {
		s.Service.URL = f.Service.URL
	}
	if f.Service.APIVersion != 0 {
		s.Service.APIVersion = f.Service.APIVersion
	}
	if f.Service.Username != "" {
		s.Service.Username = f.Service.Username
	}
	if f.Service.Password != "" {
		s.Service.Password = f.Service.Password
	}

	var err error
	if s.Service.RequestTimeout, err = parseDuration("service.requestTimeout", f.Service.RequestTimeout, s.Service.RequestTimeout); err != nil {
		return err
	}
	if s.Watch.Timeout, err = parseDuration("watch.timeout", f.Watch.Timeout, s.Watch.Timeout); err != nil {
		return err
	}
	if s.Watch.Interval, err = parseDuration("watch.interval", f.Watch.Interval, s.Watch.Interval); err != nil {
		return err
	}

	if f.Dispatch.Parallelism < 0 {
		return zerr.With(domain.ErrSettingsInvalid, "dispatch.parallelism", f.Dispatch.Parallelism)
	}
	if f.Dispatch.Parallelism > 0 {
		s.Parallelism = f.Dispatch.Parallelism
	}
	if f.TopologyDir != "" {
		s.TopologyDir = f.TopologyDir
	}
	if f.StateFile != "" {
		s.StateFile = f.StateFile
	}

	for name, cmd := range f.Builds {
		if len(cmd) == 0 {
			return zerr.With(domain.ErrSettingsInvalid, "builds", name)
		}
		s.BuildCommands[domain.BuildType(name)] = cmd
	}
	return nil
}

// parseDuration accepts Go durations ("90s", "10m") and bare seconds ("600").
func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, zerr.With(domain.ErrSettingsInvalid, field, value)
	}
	return d, nil
}

func (l *SettingsLoader) applyEnv(s *domain.Settings) error {
	if v, ok := l.lookup(EnvServiceURL); ok && v != "" {
		s.Service.URL = v
	}
	if v, ok := l.lookup(EnvUsername); ok && v != "" {
		s.Service.Username = v
	}
	if v, ok := l.lookup(EnvPassword); ok && v != "" {
		s.Service.Password = v
	}
	if v, ok := l.lookup(EnvAPIVersion); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return zerr.With(domain.ErrSettingsInvalid, EnvAPIVersion, v)
		}
		s.Service.APIVersion = n
	}
	return nil
}
