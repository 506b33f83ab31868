package services

import (
	"errors"
	"testing"

	"github.com/justinjohnso/soundmesh/internal/state"
	"github.com/justinjohnso/soundmesh/internal/variant"
)

type recordingWriter struct {
	written []variant.Variant
	err     error
}

func (w *recordingWriter) Write(v variant.Variant) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, v)
	return nil
}

type recordingRecorder struct {
	records []state.RunRecord
	err     error
}

func (r *recordingRecorder) Append(record state.RunRecord) (state.RunRecord, error) {
	if r.err != nil {
		return state.RunRecord{}, r.err
	}
	record.ID = "test-run"
	r.records = append(r.records, record)
	return record, nil
}

func testServiceTable(t *testing.T) variant.Table {
	t.Helper()

	table, err := variant.NewEmbeddedTableRepository().Get(variant.ProfileDefault)
	if err != nil {
		t.Fatalf("failed to get embedded table: %v", err)
	}
	return table
}

func TestResolveServiceWritesManifestAndRecordsRun(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	recorder := &recordingRecorder{}
	service := ResolveService{
		Table:    testServiceTable(t),
		Manifest: writer,
		Recorder: recorder,
	}

	selection, err := service.Run(ResolveRequest{EnvironmentID: "tx"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if selection.Variant.SourcePath != "tx/main.c" {
		t.Errorf("selection source = %q, want tx/main.c", selection.Variant.SourcePath)
	}
	if len(writer.written) != 1 || writer.written[0].SourcePath != "tx/main.c" {
		t.Errorf("manifest writes = %+v, want one tx/main.c write", writer.written)
	}
	if len(recorder.records) != 1 || recorder.records[0].EnvironmentID != "tx" {
		t.Errorf("recorded runs = %+v, want one tx record", recorder.records)
	}
}

func TestResolveServiceManifestErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("disk full")
	service := ResolveService{
		Table:    testServiceTable(t),
		Manifest: &recordingWriter{err: wantErr},
	}

	if _, err := service.Run(ResolveRequest{EnvironmentID: "tx"}); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestResolveServiceRecorderErrorIsSwallowed(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	service := ResolveService{
		Table:    testServiceTable(t),
		Manifest: writer,
		Recorder: &recordingRecorder{err: errors.New("journal unwritable")},
	}

	if _, err := service.Run(ResolveRequest{EnvironmentID: "rx"}); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if len(writer.written) != 1 {
		t.Errorf("manifest writes = %d, want 1", len(writer.written))
	}
}

func TestResolveServiceStrictRejectsUnknown(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	service := ResolveService{
		Table:    testServiceTable(t),
		Manifest: writer,
	}

	_, err := service.Run(ResolveRequest{EnvironmentID: "typo", Strict: true})
	if err == nil {
		t.Fatal("Run() error = nil, want UnknownEnvironmentError")
	}
	var unknown *variant.UnknownEnvironmentError
	if !errors.As(err, &unknown) {
		t.Fatalf("Run() error = %v, want UnknownEnvironmentError", err)
	}
	if len(writer.written) != 0 {
		t.Errorf("manifest writes = %d, want 0 after strict failure", len(writer.written))
	}
}

func TestResolveServiceDefaultsWithoutWriterOrRecorder(t *testing.T) {
	t.Parallel()

	service := ResolveService{Table: testServiceTable(t)}

	selection, err := service.Run(ResolveRequest{EnvironmentID: "unrecognized"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !selection.Defaulted {
		t.Error("selection defaulted = false, want true")
	}
	if selection.Variant.SourcePath != "rx/main.c" {
		t.Errorf("selection source = %q, want rx/main.c", selection.Variant.SourcePath)
	}
}
