// Package cmd provides the root command and CLI setup for exportscan.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"exportscan.dev/pkg/exportscan/internal/adapter"
	"exportscan.dev/pkg/exportscan/internal/controller"
	"exportscan.dev/pkg/exportscan/internal/domain"
	m "exportscan.dev/pkg/exportscan/internal/model"
)

var documentAdapter adapter.DocumentAdapter
var sourceWatcher adapter.SourceWatcher

var (
	maxDepthFlag   int
	excludeFlag    []string
	privateFlag    bool
	valuesFlag     bool
	classesFlag    bool
	prototypesFlag bool
	debugFlag      bool
	parallelFlag   int
	formatFlag     string
	verboseFlag    bool
	logFileFlag    string
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	documentAdapter = adapter.NewLocalDocumentAdapter()
	sourceWatcher = adapter.NewFSSourceWatcher(adapter.DefaultDebounce)
}

const sourcesHelp = `Sources are either built-in subjects or document files:
  - catalog:<name>   a Go value registered in the built-in catalog
  - file.yaml        a YAML document (also .yml)
  - file.toml        a TOML document
  - file.json        a JSON document`

const rootLongDescription = `Exportscan walks a value graph and reports its callable surface: every
reachable function, class constructor and method, addressed by its dotted
property path. Plain values can be reported as well.

` + sourcesHelp

const listLongDescription = `List the export names of each source in discovery order.

` + sourcesHelp

const callablesLongDescription = `List the callables of each source with their kind and signature.

` + sourcesHelp

const analyzeLongDescription = `Summarize the export surface of each source.

` + sourcesHelp

const watchLongDescription = `List the export names of each source and list them again whenever a
document source changes. Stops on interrupt.

` + sourcesHelp

const diffLongDescription = `Compare the export surfaces of two sources as a unified diff.

` + sourcesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exportscan",
		Short: "Callable surface scanner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

// newRootCmd builds a root command with its persistent flags bound to config.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.IntVar(&maxDepthFlag, maxDepthFlagName, viper.GetInt(maxDepthConfigKey), "maximum recursion depth from the root")
	bindFlagToConfig(flags.Lookup(maxDepthFlagName), maxDepthConfigKey)

	flags.StringSliceVarP(&excludeFlag, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "keys to skip (replaces the default list)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.BoolVar(&privateFlag, privateFlagName, viper.GetBool(privateConfigKey), "include underscore-prefixed keys")
	bindFlagToConfig(flags.Lookup(privateFlagName), privateConfigKey)

	flags.BoolVar(&valuesFlag, valuesFlagName, viper.GetBool(valuesConfigKey), "report plain values annotated with their kind")
	bindFlagToConfig(flags.Lookup(valuesFlagName), valuesConfigKey)

	flags.BoolVar(&classesFlag, classesFlagName, viper.GetBool(classesConfigKey), "include class constructors among callables")
	bindFlagToConfig(flags.Lookup(classesFlagName), classesConfigKey)

	flags.BoolVar(&prototypesFlag, prototypesFlagName, viper.GetBool(prototypesConfigKey), "follow method sets")
	bindFlagToConfig(flags.Lookup(prototypesFlagName), prototypesConfigKey)

	flags.BoolVar(&debugFlag, debugFlagName, viper.GetBool(debugConfigKey), "trace the traversal to stderr")
	bindFlagToConfig(flags.Lookup(debugFlagName), debugConfigKey)

	flags.IntVarP(&parallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of sources scanned in parallel")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format: text, json or yaml")
	bindFlagToConfig(flags.Lookup(formatFlagName), formatConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// scanOptions translates the resolved configuration into engine options.
func scanOptions(cmd *cobra.Command) []domain.Option {
	debug := viper.GetBool(debugConfigKey)

	opts := []domain.Option{
		domain.WithMaxDepth(viper.GetInt(maxDepthConfigKey)),
		domain.WithExclude(viper.GetStringSlice(excludeConfigKey)...),
		domain.WithPrivate(viper.GetBool(privateConfigKey)),
		domain.WithNonFunctions(viper.GetBool(valuesConfigKey)),
		domain.WithClasses(viper.GetBool(classesConfigKey)),
		domain.WithPrototypes(viper.GetBool(prototypesConfigKey)),
		domain.WithDebug(debug),
	}

	if debug {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, domain.WithLogger(slog.New(handler)))
	}

	return opts
}

func scanArgs(cmd *cobra.Command, args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Sources: parsePaths(args),
		Options: scanOptions(cmd),
		Threads: viper.GetInt(runParallelConfigKey),
	}
}

// newWorkflow wires the workflow to a UI matching the configured output format.
func newWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	ui, err := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()), viper.GetString(formatConfigKey))
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return domain.NewWorkflow(documentAdapter, sourceWatcher, ui), nil
}
