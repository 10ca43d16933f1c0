package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aexvir/allure"
)

// DistEnv overrides the cache directory computed from the executable location.
const DistEnv = "ALLURE_DIST_DIR"

// Layout captures the locations the launcher works with.
type Layout struct {
	// Base is the directory the launcher is installed in, parent of its bin directory.
	Base string
	// Dist is the cache directory archives are downloaded to and extracted in.
	Dist string
	// Report is the default output directory for generated reports.
	Report string
}

// FromExecutable derives the layout from the path of the running executable.
func FromExecutable(exe string) Layout {
	base := filepath.Dir(filepath.Dir(exe))
	return Layout{
		Base:   base,
		Dist:   filepath.Join(base, ".dist"),
		Report: filepath.Join(base, allure.ReportDir),
	}
}

// Resolve determines the layout of the current process, following symlinks so a
// linked launcher still shares the cache of the installed one.
func Resolve() (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("resolve executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	layout := FromExecutable(exe)
	if dist := os.Getenv(DistEnv); dist != "" {
		abs, err := filepath.Abs(dist)
		if err != nil {
			return Layout{}, fmt.Errorf("resolve %s: %w", DistEnv, err)
		}
		layout.Dist = abs
	}

	return layout, nil
}
