package variant

import "testing"

func TestEmbeddedRepositoryProfiles(t *testing.T) {
	repo := NewEmbeddedTableRepository()

	profiles := repo.ListProfiles()
	if len(profiles) != 2 {
		t.Fatalf("len(ListProfiles()) = %d, want 2", len(profiles))
	}
	if profiles[0] != ProfileDefault || profiles[1] != ProfileMinimal {
		t.Errorf("ListProfiles() = %v, want [%s %s]", profiles, ProfileDefault, ProfileMinimal)
	}
}

func TestEmbeddedTablesAreValid(t *testing.T) {
	repo := NewEmbeddedTableRepository()

	for _, profile := range repo.ListProfiles() {
		table, err := repo.Get(profile)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", profile, err)
		}
		if err := table.Validate(); err != nil {
			t.Errorf("profile %s: Validate() error = %v", profile, err)
		}
	}
}

func TestEmbeddedProfileSizes(t *testing.T) {
	repo := NewEmbeddedTableRepository()

	full, err := repo.Get(ProfileDefault)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", ProfileDefault, err)
	}
	if len(full.Variants) != 2 {
		t.Errorf("default profile variants = %d, want 2", len(full.Variants))
	}

	minimal, err := repo.Get(ProfileMinimal)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", ProfileMinimal, err)
	}
	if len(minimal.Variants) != 1 {
		t.Errorf("minimal profile variants = %d, want 1", len(minimal.Variants))
	}
}

func TestEmbeddedRepositoryUnknownProfile(t *testing.T) {
	repo := NewEmbeddedTableRepository()

	if _, err := repo.Get("nonexistent"); err == nil {
		t.Error("Get(nonexistent) error = nil, want non-nil")
	}
}
