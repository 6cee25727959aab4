package controller

import (
	m "exportscan.dev/pkg/exportscan/internal/model"
)

func sampleNames() []m.NamesReport {
	return []m.NamesReport{
		{Source: "catalog:strings", Names: []string{"case.upper", "split", "trim"}},
		{Source: "module.yaml", Names: []string{}},
	}
}

func sampleCallables() []m.CallablesReport {
	return []m.CallablesReport{{
		Source: "catalog:geometry",
		Callables: []m.Callable{
			{Path: "Point", Verdict: m.VerdictClass, Signature: "catalog.PointClass"},
			{Path: "distance", Verdict: m.VerdictFunction, Signature: "func(*catalog.Point, *catalog.Point) float64"},
		},
	}}
}

func sampleAnalysis() []m.AnalysisReport {
	return []m.AnalysisReport{{
		Source: "catalog:esmodule",
		Analysis: m.Analysis{
			Functions:  []string{"farewell", "greet"},
			AllExports: []string{"farewell", "greet"},
			Summary: m.Summary{
				FunctionCount: 2,
				TotalExports:  2,
				HasDefault:    true,
				IsObject:      true,
			},
		},
	}}
}

func sampleDiff() m.DiffReport {
	return m.DiffReport{
		From:    "old.yaml",
		To:      "new.yaml",
		Added:   []string{"b (number)"},
		Removed: []string{"a (string)"},
		Unified: "--- old.yaml\n+++ new.yaml\n@@ -1 +1 @@\n-a (string)\n+b (number)\n",
	}
}
