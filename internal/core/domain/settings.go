package domain

import (
	"maps"
	"slices"
	"time"
)

// Default settings values.
const (
	DefaultSettingsFile   = "rollout.yaml"
	DefaultStateFile      = "env.properties"
	DefaultTopologyDir    = "."
	DefaultAPIVersion     = 37
	DefaultRequestTimeout = 30 * time.Second
	DefaultParallelism    = 1
)

// ServiceSettings configure the remote job service.
type ServiceSettings struct {
	URL            string
	APIVersion     int
	Username       string
	Password       string
	RequestTimeout time.Duration
}

// Settings is the explicit configuration passed into every component of a run.
type Settings struct {
	Service       ServiceSettings
	Watch         WatchBudget
	Parallelism   int
	TopologyDir   string
	StateFile     string
	BuildCommands map[BuildType][]string
}

// DefaultBuildCommands are used for build types missing from the settings file.
func DefaultBuildCommands() map[BuildType][]string {
	return map[BuildType][]string{
		BuildTypeMaven:  {"mvn", "-B", "versions:set", "-DnewVersion=${BUILD_TAG}", "clean", "package"},
		BuildTypeNPM:    {"npm", "ci"},
		BuildTypeDocker: {"docker", "build", "-t", "${REPO_NAME}:${BUILD_TAG}", "."},
		BuildTypeTar:    {"tar", "-czf", "${REPO_NAME}-${BUILD_TAG}.tar.gz", "--exclude=.git", "."},
	}
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Service: ServiceSettings{
			APIVersion:     DefaultAPIVersion,
			RequestTimeout: DefaultRequestTimeout,
		},
		Watch:         DefaultWatchBudget(),
		Parallelism:   DefaultParallelism,
		TopologyDir:   DefaultTopologyDir,
		StateFile:     DefaultStateFile,
		BuildCommands: DefaultBuildCommands(),
	}
}

// Normalize fills zero values with defaults and clamps the watch budget.
func (s Settings) Normalize() Settings {
	if s.Service.APIVersion <= 0 {
		s.Service.APIVersion = DefaultAPIVersion
	}
	if s.Service.RequestTimeout <= 0 {
		s.Service.RequestTimeout = DefaultRequestTimeout
	}
	if s.Watch.Timeout == 0 {
		s.Watch.Timeout = DefaultWatchTimeout
	}
	if s.Watch.Interval == 0 {
		s.Watch.Interval = DefaultWatchInterval
	}
	s.Watch = s.Watch.Normalize()
	if s.Parallelism < 1 {
		s.Parallelism = DefaultParallelism
	}
	if s.TopologyDir == "" {
		s.TopologyDir = DefaultTopologyDir
	}
	if s.StateFile == "" {
		s.StateFile = DefaultStateFile
	}

	commands := DefaultBuildCommands()
	maps.Copy(commands, s.BuildCommands)
	for bt, cmd := range commands {
		commands[bt] = slices.Clone(cmd)
	}
	s.BuildCommands = commands
	return s
}
