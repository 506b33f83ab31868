package variant

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads a variant table from a YAML file and validates it. A
// project-local table overrides the embedded profiles, so adding a variant
// is a data change rather than a code change.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read variant table: %w", err)
	}

	table, err := ParseTable(data)
	if err != nil {
		return Table{}, fmt.Errorf("variant table %s: %w", path, err)
	}
	return table, nil
}

// ParseTable decodes and validates a YAML variant table.
func ParseTable(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("parse variant table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}
