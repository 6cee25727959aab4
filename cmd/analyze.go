package cmd

import (
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <sources...>",
		Short: "Summarize export surfaces",
		Long:  analyzeLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.Analyze(cmd.Context(), scanArgs(cmd, args))
		},
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
