package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rollout/internal/app"
	"go.trai.ch/rollout/internal/core/domain"
)

func (c *CLI) newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Trigger the deployment job for every environment in ENV_NAME",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noWait, _ := cmd.Flags().GetBool("no-wait")
			strict, _ := cmd.Flags().GetBool("strict")

			return c.app.Deploy(cmd.Context(), app.DeployOptions{
				WorkspaceOptions: c.workspaceOptions(),
				Mode:             domain.ModeRun,
				NoWait:           noWait,
				Strict:           strict,
			})
		},
	}
	cmd.Flags().Bool("no-wait", false, "Do not wait for executions to finish")
	cmd.Flags().Bool("strict", false, "Exit non-zero when any environment fails")
	return cmd
}

func (c *CLI) newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule the deployment job DEPLOY_DELAY from now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			return c.app.Deploy(cmd.Context(), app.DeployOptions{
				WorkspaceOptions: c.workspaceOptions(),
				Mode:             domain.ModeSchedule,
				Strict:           strict,
			})
		},
	}
	cmd.Flags().Bool("strict", false, "Exit non-zero when any environment could not be scheduled")
	return cmd
}
