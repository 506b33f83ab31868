package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DirName is the project-local directory holding helper state.
const DirName = ".soundmesh"

const journalName = "runs.yaml"

// RunRecord captures one resolve invocation for later inspection.
type RunRecord struct {
	ID            string    `yaml:"id"`
	EnvironmentID string    `yaml:"environment"`
	SourcePath    string    `yaml:"source"`
	Defaulted     bool      `yaml:"defaulted"`
	CreatedAt     time.Time `yaml:"created_at"`
}

// LocalRunRepository appends run records to a YAML journal under BaseDir.
// The journal is bookkeeping, not part of the build contract: callers treat
// append failures as warnings.
type LocalRunRepository struct {
	BaseDir string
}

// Append stores a new record, assigning an id and timestamp when missing.
func (r *LocalRunRepository) Append(record RunRecord) (RunRecord, error) {
	if r.BaseDir == "" {
		return RunRecord{}, errors.New("base directory is not configured")
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	records, err := r.List()
	if err != nil {
		return RunRecord{}, err
	}
	records = append(records, record)

	if err := os.MkdirAll(r.BaseDir, 0o755); err != nil {
		return RunRecord{}, fmt.Errorf("create state directory: %w", err)
	}

	payload, err := yaml.Marshal(records)
	if err != nil {
		return RunRecord{}, fmt.Errorf("encode run journal: %w", err)
	}

	if err := os.WriteFile(r.journalPath(), payload, 0o644); err != nil {
		return RunRecord{}, fmt.Errorf("write run journal: %w", err)
	}
	return record, nil
}

// List returns all recorded runs in append order. A missing journal is an
// empty history, not an error.
func (r *LocalRunRepository) List() ([]RunRecord, error) {
	if r.BaseDir == "" {
		return nil, errors.New("base directory is not configured")
	}

	data, err := os.ReadFile(r.journalPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read run journal: %w", err)
	}

	var records []RunRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode run journal: %w", err)
	}
	return records, nil
}

func (r *LocalRunRepository) journalPath() string {
	return filepath.Join(r.BaseDir, journalName)
}
