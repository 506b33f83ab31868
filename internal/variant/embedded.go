package variant

import "fmt"

// Built-in profile names.
const (
	// ProfileDefault carries the full variant set: transmitter, combined
	// tx+rx, and the receiver as fallback.
	ProfileDefault = "default"
	// ProfileMinimal carries only the transmitter, with the receiver as
	// fallback. Matches boards that cannot host the combined build.
	ProfileMinimal = "minimal"
)

// EmbeddedTableRepository holds the built-in variant tables keyed by profile
// name.
type EmbeddedTableRepository struct {
	tables map[string]Table
	order  []string
}

// NewEmbeddedTableRepository constructs a repository pre-populated with the
// built-in profiles.
func NewEmbeddedTableRepository() *EmbeddedTableRepository {
	repo := &EmbeddedTableRepository{
		tables: make(map[string]Table),
	}

	repo.add(ProfileDefault, Table{
		Variants: []Variant{
			{Key: "tx", SourcePath: "tx/main.c", Message: "Building TX firmware"},
			{Key: "combo", SourcePath: "combo/main.c", Message: "Building COMBO firmware"},
		},
		Default: Variant{Key: "rx", SourcePath: "rx/main.c", Message: "Building RX firmware"},
	})

	repo.add(ProfileMinimal, Table{
		Variants: []Variant{
			{Key: "tx", SourcePath: "tx/main.c", Message: "Building TX firmware"},
		},
		Default: Variant{Key: "rx", SourcePath: "rx/main.c", Message: "Building RX firmware"},
	})

	return repo
}

// Get returns the table for the provided profile name.
func (r *EmbeddedTableRepository) Get(profile string) (Table, error) {
	table, ok := r.tables[profile]
	if !ok {
		return Table{}, fmt.Errorf("unknown variant profile %q", profile)
	}
	return table, nil
}

// ListProfiles returns the available profile names in registration order.
func (r *EmbeddedTableRepository) ListProfiles() []string {
	profiles := make([]string, len(r.order))
	copy(profiles, r.order)
	return profiles
}

func (r *EmbeddedTableRepository) add(profile string, table Table) {
	if _, exists := r.tables[profile]; !exists {
		r.order = append(r.order, profile)
	}
	r.tables[profile] = table
}
