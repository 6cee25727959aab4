package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodedUI_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewEncodedUI(out, FormatJSON)

	require.NoError(t, ui.DisplayAnalysis(context.Background(), sampleAnalysis()))

	var decoded []m.AnalysisReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleAnalysis(), decoded)
	assert.Contains(t, out.String(), `"hasDefault": true`)
}

func TestEncodedUI_YAML(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewEncodedUI(out, FormatYAML)

	require.NoError(t, ui.DisplayCallables(context.Background(), sampleCallables()))

	var decoded []m.CallablesReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleCallables(), decoded)
	assert.Contains(t, out.String(), "kind: class")
}

func TestEncodedUI_Diff(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewEncodedUI(out, FormatJSON)

	require.NoError(t, ui.DisplayDiff(context.Background(), sampleDiff()))

	var decoded m.DiffReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleDiff(), decoded)
}

func TestEncodedUI_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		ui := NewEncodedUI(&bytes.Buffer{}, "xml")
		require.ErrorIs(t, ui.DisplayNames(context.Background(), sampleNames()), ErrUnknownFormat)
	})

	t.Run("cancelled context", func(t *testing.T) {
		out := &bytes.Buffer{}
		ui := NewEncodedUI(out, FormatJSON)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, ui.DisplayNames(ctx, sampleNames()), context.Canceled)
		assert.Empty(t, out.String())
	})
}
