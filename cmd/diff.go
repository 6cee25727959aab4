package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"exportscan.dev/pkg/exportscan/internal/domain"
	m "exportscan.dev/pkg/exportscan/internal/model"
)

var diffContextFlag int

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare the export surfaces of two sources",
		Long:  diffLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				From:    m.Path(args[0]),
				To:      m.Path(args[1]),
				Options: scanOptions(cmd),
				Context: viper.GetInt(diffContextConfigKey),
			})
		},
	}

	cmd.Flags().IntVarP(&diffContextFlag, diffContextFlagName, "c", defaultDiffContext, "unchanged lines shown around each change")
	bindFlagToConfig(cmd.Flags().Lookup(diffContextFlagName), diffContextConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
