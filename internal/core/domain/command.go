package domain

// Command is an external process invocation, such as a build tool.
type Command struct {
	Args       []string
	WorkingDir string
	// Environment is added on top of the allow-listed system environment.
	Environment map[string]string
}
