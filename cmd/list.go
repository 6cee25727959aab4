package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <sources...>",
		Short: "List export names",
		Long:  listLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), scanArgs(cmd, args))
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
