package config

// settingsFile is the on-disk layout of rollout.yaml.
type settingsFile struct {
	Service     serviceDTO          `yaml:"service"`
	Watch       watchDTO            `yaml:"watch"`
	Dispatch    dispatchDTO         `yaml:"dispatch"`
	TopologyDir string              `yaml:"topologyDir"`
	StateFile   string              `yaml:"stateFile"`
	Builds      map[string][]string `yaml:"builds"`
}

type serviceDTO struct {
	URL            string `yaml:"url"`
	APIVersion     int    `yaml:"apiVersion"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	RequestTimeout string `yaml:"requestTimeout"`
}

// watchDTO holds durations such as "600s" or "10m".
type watchDTO struct {
	Timeout  string `yaml:"timeout"`
	Interval string `yaml:"interval"`
}

type dispatchDTO struct {
	Parallelism int `yaml:"parallelism"`
}

// topologyFile is the on-disk layout of {project}.json:
// environment -> build type -> target.
type topologyFile map[string]map[string]targetDTO

type targetDTO struct {
	JobName string    `json:"job_name"`
	Nodes   []nodeDTO `json:"nodes"`
}

type nodeDTO struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}
