package services

import (
	"log/slog"

	"github.com/justinjohnso/soundmesh/internal/state"
	"github.com/justinjohnso/soundmesh/internal/variant"
)

// ManifestWriter persists the generated build manifest for a resolved
// variant.
type ManifestWriter interface {
	Write(variant.Variant) error
}

// RunRecorder journals resolve invocations.
type RunRecorder interface {
	Append(state.RunRecord) (state.RunRecord, error)
}

// ResolveRequest describes one resolve invocation.
type ResolveRequest struct {
	EnvironmentID string
	// Strict fails on identifiers missing from the table instead of
	// silently selecting the default variant.
	Strict bool
}

// ResolveService maps a build environment to its variant and regenerates the
// component manifest. The manifest writer is the build contract; the
// recorder is optional bookkeeping whose failures only warn.
type ResolveService struct {
	Logger   *slog.Logger
	Table    variant.Table
	Manifest ManifestWriter
	Recorder RunRecorder
}

// Run resolves the request, logs the variant's status message, writes the
// manifest and records the run.
func (s *ResolveService) Run(request ResolveRequest) (variant.Selection, error) {
	logger := s.logger().With("environment", request.EnvironmentID)

	var selection variant.Selection
	if request.Strict {
		var err error
		selection, err = s.Table.ResolveStrict(request.EnvironmentID)
		if err != nil {
			return variant.Selection{}, err
		}
	} else {
		selection = s.Table.Resolve(request.EnvironmentID)
	}

	logger.Info(selection.Variant.Message,
		"source", selection.Variant.SourcePath,
		"defaulted", selection.Defaulted,
	)

	if s.Manifest != nil {
		if err := s.Manifest.Write(selection.Variant); err != nil {
			return variant.Selection{}, err
		}
	}

	if s.Recorder != nil {
		record := state.RunRecord{
			EnvironmentID: selection.EnvironmentID,
			SourcePath:    selection.Variant.SourcePath,
			Defaulted:     selection.Defaulted,
		}
		if stored, err := s.Recorder.Append(record); err != nil {
			logger.Warn("failed to record run", "error", err)
		} else {
			logger.Debug("run recorded", "run_id", stored.ID)
		}
	}

	return selection, nil
}

func (s *ResolveService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
