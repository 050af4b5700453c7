package types

// ExtractConfig holds settings for one extraction run.
type ExtractConfig struct {
	// Classes filters which entity classes are exported. The single
	// entry "*" selects every rooted entity in the model.
	Classes []string `json:"classes" yaml:"classes"`

	// Attributes lists extra top-level attributes to include as columns
	// (e.g. "PredefinedType", "Tag").
	Attributes []string `json:"attributes" yaml:"attributes"`

	// Limit caps the number of exported elements; 0 means no limit.
	Limit int `json:"limit" yaml:"limit"`
}

// OutputConfig holds settings for one output destination.
type OutputConfig struct {
	// Path is the output file path.
	Path string `json:"path" yaml:"path"`

	// Sheet is the worksheet name for Excel output (default "Elements").
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}
