package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"exportscan.dev/pkg/exportscan/internal/catalog"
)

// catalogCmd represents the catalog command.
var catalogCmd = newCatalogCmd()

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the built-in subjects",
		Long:  "Lists the Go values that can be scanned with a catalog:<name> source.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Source", "Description"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)

			for _, entry := range catalog.Entries() {
				table.Append([]string{catalog.Prefix + entry.Name, entry.Description})
			}

			table.Render()
		},
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
