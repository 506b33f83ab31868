package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/justinjohnso/soundmesh/internal/variant"
)

// DefaultRelativePath is where the ESP-IDF build expects the generated
// component manifest, relative to the project directory.
const DefaultRelativePath = "src/CMakeLists.txt"

// The leading and trailing newlines are part of the interface: downstream
// tooling compares the generated file byte for byte.
var manifestTemplate = template.Must(template.New("manifest").Parse(
	"\nidf_component_register(SRCS \"{{.SourcePath}}\"" +
		"{{if .IncludeDirs}} INCLUDE_DIRS{{range .IncludeDirs}} \"{{.}}\"{{end}}{{end}}" +
		"{{if .Requires}} REQUIRES{{range .Requires}} {{.}}{{end}}{{end}})\n",
))

// Render produces the manifest content registering the variant's main source
// file as the component's sole compilation unit. Rendering is deterministic:
// the same variant always yields identical bytes.
func Render(v variant.Variant) (string, error) {
	if v.SourcePath == "" {
		return "", errors.New("variant has no source path")
	}

	var builder strings.Builder
	if err := manifestTemplate.Execute(&builder, v); err != nil {
		return "", fmt.Errorf("render build manifest: %w", err)
	}
	return builder.String(), nil
}

// Writer regenerates the component manifest for a resolved variant. The
// target file is overwritten unconditionally on every invocation; a failed
// write must abort the enclosing build, so errors are never swallowed here.
type Writer struct {
	ProjectDir string
	// Path overrides DefaultRelativePath when set. Relative paths are
	// resolved against ProjectDir.
	Path string
}

// Write renders the manifest for the variant and writes it to the target
// path. The parent directory is expected to exist; its absence is a build
// configuration error, not something to paper over with MkdirAll.
func (w Writer) Write(v variant.Variant) error {
	content, err := Render(v)
	if err != nil {
		return err
	}

	path := w.TargetPath()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write build manifest %s: %w", path, err)
	}
	return nil
}

// TargetPath returns the absolute or project-relative location the manifest
// is written to.
func (w Writer) TargetPath() string {
	path := w.Path
	if path == "" {
		path = DefaultRelativePath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.ProjectDir, path)
}
