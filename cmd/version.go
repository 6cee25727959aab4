package cmd

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"exportscan.dev/pkg/exportscan/internal/catalog"
	"exportscan.dev/pkg/exportscan/internal/domain"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the build of this binary followed by the scan defaults it
ships with and the number of built-in catalog subjects.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			info, ok := debug.ReadBuildInfo()
			writeBuild(out, info, ok)
			writeEngineDefaults(out)
		},
	}
}

func writeBuild(out io.Writer, info *debug.BuildInfo, ok bool) {
	if !ok || info.Main.Version == "" {
		fmt.Fprintln(out, "version: unknown")
		return
	}

	fmt.Fprintln(out, "exportscan version\t", info.Main.Version)
	fmt.Fprintln(out, "module\t", info.Main.Path)
	fmt.Fprintln(out, "go version\t", info.GoVersion)
}

func writeEngineDefaults(out io.Writer) {
	fmt.Fprintln(out, "max depth\t", domain.DefaultMaxDepth)
	fmt.Fprintln(out, "excluded keys\t", strings.Join(domain.DefaultExclude, ","))
	fmt.Fprintln(out, "catalog subjects\t", len(catalog.Entries()))
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
