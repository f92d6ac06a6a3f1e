package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the build type of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, _ := cmd.Flags().GetBool("record")
			bt := c.app.Detect(cmd.Context(), c.workspaceOptions(), record)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), bt)
			return err
		},
	}
	cmd.Flags().Bool("record", false, "Write BUILD_TYPE to the run-state file")
	return cmd
}
