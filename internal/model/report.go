package model

// Path identifies a scan source: a document file or a catalog:<name> entry.
type Path string

// Summary holds the derived facts of an analysis.
type Summary struct {
	FunctionCount int  `json:"functionCount" yaml:"function_count"`
	TotalExports  int  `json:"totalExports" yaml:"total_exports"`
	HasDefault    bool `json:"hasDefault" yaml:"has_default"`
	IsCallable    bool `json:"isFunction" yaml:"is_function"`
	IsObject      bool `json:"isObject" yaml:"is_object"`
}

// Analysis is the result of the summary analyzer.
type Analysis struct {
	Functions  []string `json:"functions" yaml:"functions"`
	AllExports []string `json:"allExports" yaml:"all_exports"`
	Summary    Summary  `json:"summary" yaml:"summary"`
}

// Callable describes one extracted callable for display.
type Callable struct {
	Path      string  `json:"path" yaml:"path"`
	Verdict   Verdict `json:"kind" yaml:"kind"`
	Signature string  `json:"signature" yaml:"signature"`
}

// NamesReport is the name lister output for one source.
type NamesReport struct {
	Source Path     `json:"source" yaml:"source"`
	Names  []string `json:"names" yaml:"names"`
}

// CallablesReport is the callable extractor output for one source.
type CallablesReport struct {
	Source    Path       `json:"source" yaml:"source"`
	Callables []Callable `json:"callables" yaml:"callables"`
}

// AnalysisReport is the summary analyzer output for one source.
type AnalysisReport struct {
	Source   Path     `json:"source" yaml:"source"`
	Analysis Analysis `json:"analysis" yaml:"analysis"`
}

// DiffReport compares the export surfaces of two sources.
type DiffReport struct {
	From    Path     `json:"from" yaml:"from"`
	To      Path     `json:"to" yaml:"to"`
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
	Unified string   `json:"unified" yaml:"unified"`
}

// Changed reports whether the two surfaces differ.
func (d DiffReport) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}
