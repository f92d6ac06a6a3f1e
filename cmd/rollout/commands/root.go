// Package commands implements the CLI commands for rollout.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rollout/internal/app"
	"go.trai.ch/rollout/internal/build"
	"go.trai.ch/rollout/internal/core/domain"
)

// CLI represents the command line interface for rollout.
type CLI struct {
	app       Application
	rootCmd   *cobra.Command
	workspace string
	stateFile string
	jsonLogs  bool
	setJSON   func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Deploy(ctx context.Context, opts app.DeployOptions) error
	Detect(ctx context.Context, opts app.WorkspaceOptions, record bool) domain.BuildType
	Build(ctx context.Context, opts app.WorkspaceOptions) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONLogs registers the callback invoked when --json-logs is passed.
func WithJSONLogs(fn func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rollout",
		Short:         "Build and deploy pipeline workspaces through Rundeck",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.workspace, "workspace", "w", ".", "Workspace directory to build or deploy")
	flags.StringVar(&c.stateFile, "state-file", "", "Run-state file (default from settings, relative to the workspace)")
	flags.BoolVar(&c.jsonLogs, "json-logs", false, "Write logs as JSON")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
	}

	rootCmd.AddCommand(c.newDeployCmd())
	rootCmd.AddCommand(c.newScheduleCmd())
	rootCmd.AddCommand(c.newDetectCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) workspaceOptions() app.WorkspaceOptions {
	return app.WorkspaceOptions{
		Workspace: c.workspace,
		StateFile: c.stateFile,
	}
}
