package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"exportscan.dev/pkg/exportscan/internal/adapter"
	"exportscan.dev/pkg/exportscan/internal/controller"
	m "exportscan.dev/pkg/exportscan/internal/model"
)

// executeCommand runs a fresh command tree with output captured.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	root.AddCommand(newListCmd(), newCallablesCmd(), newAnalyzeCmd(), newDiffCmd(), newCatalogCmd(), newWatchCmd())

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "exportscan.log")}, args...))

	err := root.Execute()

	return out.String(), err
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty", []string{}, []m.Path{}},
		{"single", []string{"catalog:strings"}, []m.Path{m.Path("catalog:strings")}},
		{
			"multiple",
			[]string{"a.yaml", "b.toml", "catalog:lazy"},
			[]m.Path{m.Path("a.yaml"), m.Path("b.toml"), m.Path("catalog:lazy")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePaths(tt.args)
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "exportscan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{maxDepthFlagName, excludeFlagName, valuesFlagName, formatFlagName, runParallelFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	output, err := executeCommand(t)

	require.NoError(t, err)
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "catalog:<name>")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, documentAdapter)
	assert.NotNil(t, sourceWatcher)

	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"analyze", "callables", "catalog", "diff", "init", "list", "version", "watch"})
}

func TestListCmd(t *testing.T) {
	t.Run("functions", func(t *testing.T) {
		output, err := executeCommand(t, "list", "catalog:strings")
		require.NoError(t, err)

		assert.Contains(t, output, "catalog:strings")
		assert.Contains(t, output, "case.upper")
		assert.Contains(t, output, "convert.atoi")
		assert.NotContains(t, output, "_internalCache")
	})

	t.Run("values", func(t *testing.T) {
		output, err := executeCommand(t, "list", "--values", "catalog:settings")
		require.NoError(t, err)

		assert.Contains(t, output, "port (number)")
		assert.Contains(t, output, "tags (array)")
		assert.NotContains(t, output, "Secret")
	})

	t.Run("depth", func(t *testing.T) {
		output, err := executeCommand(t, "list", "--format", "json", "--max-depth", "0", "catalog:strings")
		require.NoError(t, err)

		var reports []m.NamesReport
		require.NoError(t, json.Unmarshal([]byte(output), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, []string{"split", "trim"}, reports[0].Names)
	})

	t.Run("documents in parallel", func(t *testing.T) {
		first := writeSource(t, "a.yaml", "name: a\n")
		second := writeSource(t, "b.json", `{"count": 2}`)

		output, err := executeCommand(t, "list", "-p", "2", "--values", "-f", "json", first, second)
		require.NoError(t, err)

		var reports []m.NamesReport
		require.NoError(t, json.Unmarshal([]byte(output), &reports))
		require.Len(t, reports, 2)
		assert.Equal(t, []string{"name (string)"}, reports[0].Names)
		assert.Equal(t, []string{"count (number)"}, reports[1].Names)
	})
}

func TestCallablesCmd(t *testing.T) {
	output, err := executeCommand(t, "callables", "--classes=false", "--format", "yaml", "catalog:geometry")
	require.NoError(t, err)

	var reports []m.CallablesReport
	require.NoError(t, yaml.Unmarshal([]byte(output), &reports))
	require.Len(t, reports, 1)

	paths := make([]string, 0)
	for _, callable := range reports[0].Callables {
		paths = append(paths, callable.Path)
		assert.NotEqual(t, m.VerdictClass, callable.Verdict, callable.Path)
	}

	assert.Contains(t, paths, "Point.Origin")
	assert.Contains(t, paths, "Circle.Area")
	assert.NotContains(t, paths, "Point")
	assert.NotContains(t, paths, "Circle")
}

func TestAnalyzeCmd(t *testing.T) {
	output, err := executeCommand(t, "analyze", "-f", "json", "catalog:esmodule", "catalog:cli")
	require.NoError(t, err)

	var reports []m.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(output), &reports))
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Analysis.Summary.HasDefault)
	assert.True(t, reports[0].Analysis.Summary.IsObject)
	assert.True(t, reports[1].Analysis.Summary.IsCallable)
	assert.Equal(t, []string{"main", "Flags", "Usage"}, reports[1].Analysis.Functions)
}

func TestDiffCmd(t *testing.T) {
	from := writeSource(t, "old.yaml", "name: demo\nport: 80\n")
	to := writeSource(t, "new.toml", "name = \"demo\"\nhost = \"localhost\"\n")

	t.Run("text", func(t *testing.T) {
		output, err := executeCommand(t, "diff", "--context", "1", from, to)
		require.NoError(t, err)

		assert.Contains(t, output, "+host (string)")
		assert.Contains(t, output, "-port (number)")
		assert.Contains(t, output, "1 added, 1 removed")
	})

	t.Run("json", func(t *testing.T) {
		output, err := executeCommand(t, "diff", "-f", "json", from, from)
		require.NoError(t, err)

		var report m.DiffReport
		require.NoError(t, json.Unmarshal([]byte(output), &report))
		assert.False(t, report.Changed())
	})
}

func TestCatalogCmd(t *testing.T) {
	output, err := executeCommand(t, "catalog")
	require.NoError(t, err)

	assert.Contains(t, output, "catalog:geometry")
	assert.Contains(t, output, "catalog:lazy")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "list without sources", args: []string{"list"}},
		{name: "diff with one source", args: []string{"diff", "a.yaml"}},
		{name: "unknown format", args: []string{"list", "--format", "xml", "catalog:strings"}, is: controller.ErrUnknownFormat},
		{name: "missing document", args: []string{"analyze", "missing.yaml"}, is: os.ErrNotExist},
		{name: "catalog with args", args: []string{"catalog", "extra"}},
		{name: "watch without sources", args: []string{"watch"}},
		{name: "watch catalog only", args: []string{"watch", "catalog:cli"}, is: adapter.ErrNothingToWatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)

			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
