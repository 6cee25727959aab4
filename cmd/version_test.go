package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "max depth\t 3\n")
	assert.Contains(t, output, "excluded keys\t constructor,prototype,caller,arguments,name,length\n")
	assert.Contains(t, output, "catalog subjects\t 7\n")
}

func TestWriteBuild(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		{"no build info", nil, false, "version: unknown\n"},
		{"no main version", &debug.BuildInfo{}, true, "version: unknown\n"},
		{
			"stamped build",
			&debug.BuildInfo{GoVersion: "go1.25.1", Main: debug.Module{Path: "exportscan.dev/pkg/exportscan", Version: "v0.4.0"}},
			true,
			"exportscan version\t v0.4.0\nmodule\t exportscan.dev/pkg/exportscan\ngo version\t go1.25.1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			writeBuild(out, tt.info, tt.ok)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
