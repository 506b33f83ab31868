package variant

import (
	"errors"
	"fmt"
)

// Resolve maps an environment identifier to a variant. Entries are checked
// in declared order and the first key match wins; any other identifier,
// including the empty string, selects the default. Resolution is total and
// never fails.
func (t Table) Resolve(environmentID string) Selection {
	for _, v := range t.Variants {
		if v.Key == environmentID {
			return Selection{EnvironmentID: environmentID, Variant: v}
		}
	}

	if t.Default.Key != "" && environmentID == t.Default.Key {
		return Selection{EnvironmentID: environmentID, Variant: t.Default}
	}

	return Selection{EnvironmentID: environmentID, Variant: t.Default, Defaulted: true}
}

// UnknownEnvironmentError reports an identifier with no entry in the table.
type UnknownEnvironmentError struct {
	EnvironmentID string
}

func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown build environment %q", e.EnvironmentID)
}

// ResolveStrict resolves like Resolve but returns an error for identifiers
// that are not in the table instead of silently falling back to the default.
// Intended for catching build-configuration typos.
func (t Table) ResolveStrict(environmentID string) (Selection, error) {
	selection := t.Resolve(environmentID)
	if selection.Defaulted {
		return Selection{}, &UnknownEnvironmentError{EnvironmentID: environmentID}
	}
	return selection, nil
}

// Validate checks table hygiene: a usable default, non-empty unique keys and
// non-empty source paths.
func (t Table) Validate() error {
	if t.Default.SourcePath == "" {
		return errors.New("default variant must declare a source path")
	}

	seen := make(map[string]struct{}, len(t.Variants))
	for i, v := range t.Variants {
		if v.Key == "" {
			return fmt.Errorf("variant %d: key is required", i)
		}
		if v.SourcePath == "" {
			return fmt.Errorf("variant %q: source path is required", v.Key)
		}
		if _, duplicate := seen[v.Key]; duplicate {
			return fmt.Errorf("variant %q: duplicate key", v.Key)
		}
		seen[v.Key] = struct{}{}
	}

	if t.Default.Key != "" {
		if _, duplicate := seen[t.Default.Key]; duplicate {
			return fmt.Errorf("default variant key %q duplicates a table entry", t.Default.Key)
		}
	}

	return nil
}
