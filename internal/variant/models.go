package variant

// Variant is one entry in a build-variant table: the environment key it
// matches, the main source file compiled for that firmware, and the message
// logged when it is selected.
type Variant struct {
	Key        string `yaml:"key"`
	SourcePath string `yaml:"source"`
	Message    string `yaml:"message"`

	// Optional extras forwarded into the generated idf_component_register
	// call for variants that pull in component headers directly.
	IncludeDirs []string `yaml:"include_dirs,omitempty"`
	Requires    []string `yaml:"requires,omitempty"`
}

// Table is a closed, ordered set of variants plus the default selected when
// no key matches. Order is significant: resolution checks entries in
// declared order and the first match wins.
type Table struct {
	Variants []Variant `yaml:"variants"`
	Default  Variant   `yaml:"default"`
}

// Selection is the outcome of resolving an environment identifier against a
// table. Defaulted reports that the fallback was taken because no key
// matched.
type Selection struct {
	EnvironmentID string
	Variant       Variant
	Defaulted     bool
}

// Entries returns every variant in resolution order, the default last.
func (t Table) Entries() []Variant {
	entries := make([]Variant, 0, len(t.Variants)+1)
	entries = append(entries, t.Variants...)
	entries = append(entries, t.Default)
	return entries
}
