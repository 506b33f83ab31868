// Package simple assembles the default object graph for the CLI: embedded or
// file-based variant tables, the manifest writer and the local run journal.
package simple

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/justinjohnso/soundmesh/internal/logging"
	"github.com/justinjohnso/soundmesh/internal/manifest"
	"github.com/justinjohnso/soundmesh/internal/services"
	"github.com/justinjohnso/soundmesh/internal/state"
	"github.com/justinjohnso/soundmesh/internal/variant"
)

// DefaultProfile is the embedded variant table used when no table file or
// profile is specified.
const DefaultProfile = variant.ProfileDefault

// componentDir is where the generated manifest lives and what the registered
// source paths are relative to.
const componentDir = "src"

// ResolveOptions configures a resolve invocation.
type ResolveOptions struct {
	ProjectDir    string
	EnvironmentID string
	Profile       string
	TablePath     string
	// ManifestPath overrides the default src/CMakeLists.txt location.
	ManifestPath string
	Strict       bool
	// DryRun resolves without writing the manifest or journaling the run.
	DryRun bool
}

// Resolve maps the environment identifier to a variant and regenerates the
// build manifest.
func Resolve(options ResolveOptions, logger *slog.Logger) (variant.Selection, error) {
	logger = logging.Ensure(logger).With("component", "config.simple")

	table, err := ActiveTable(options.Profile, options.TablePath)
	if err != nil {
		return variant.Selection{}, err
	}

	service := services.ResolveService{
		Logger: logger.With("service", "resolve"),
		Table:  table,
	}

	if !options.DryRun {
		service.Manifest = manifest.Writer{
			ProjectDir: options.ProjectDir,
			Path:       options.ManifestPath,
		}
		service.Recorder = &state.LocalRunRepository{
			BaseDir: filepath.Join(options.ProjectDir, state.DirName),
		}
	}

	return service.Run(services.ResolveRequest{
		EnvironmentID: options.EnvironmentID,
		Strict:        options.Strict,
	})
}

// ActiveTable loads the variant table for the invocation: an explicit YAML
// table wins over the embedded profiles.
func ActiveTable(profile, tablePath string) (variant.Table, error) {
	if tablePath != "" {
		return variant.LoadTable(tablePath)
	}

	if profile == "" {
		profile = DefaultProfile
	}
	return variant.NewEmbeddedTableRepository().Get(profile)
}

// Check verifies that every variant's source file exists under the project's
// component directory. The resolver only ever references these paths; this
// is the one place they are validated.
func Check(projectDir, profile, tablePath string, logger *slog.Logger) error {
	logger = logging.Ensure(logger).With("component", "config.simple")

	table, err := ActiveTable(profile, tablePath)
	if err != nil {
		return err
	}

	var missing int
	for _, v := range table.Entries() {
		sourcePath := filepath.Join(projectDir, componentDir, v.SourcePath)
		if _, err := os.Stat(sourcePath); err != nil {
			logger.Error("variant source missing", "variant", v.Key, "source", sourcePath)
			missing++
			continue
		}
		logger.Info("variant source present", "variant", v.Key, "source", v.SourcePath)
	}

	if missing > 0 {
		return fmt.Errorf("%d variant source file(s) missing", missing)
	}
	return nil
}

// ListRuns returns the recorded resolve runs for the project.
func ListRuns(projectDir string) ([]state.RunRecord, error) {
	repository := &state.LocalRunRepository{
		BaseDir: filepath.Join(projectDir, state.DirName),
	}
	return repository.List()
}
