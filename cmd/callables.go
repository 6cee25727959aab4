package cmd

import (
	"github.com/spf13/cobra"
)

// callablesCmd represents the callables command.
var callablesCmd = newCallablesCmd()

func newCallablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "callables <sources...>",
		Short: "List callables with their kind and signature",
		Long:  callablesLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.Callables(cmd.Context(), scanArgs(cmd, args))
		},
	}
}

func init() {
	rootCmd.AddCommand(callablesCmd)
}
