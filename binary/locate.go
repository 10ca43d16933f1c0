package binary

import (
	"path/filepath"
	"runtime"
)

// windows distributions ship a batch launcher instead of a shell script
const windowsScriptExtension = ".bat"

// Platform identifies the host a binary is provisioned for.
type Platform struct {
	GOOS   string
	GOARCH string
}

// Host returns the platform this program is running on.
func Host() Platform {
	return Platform{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}
}

func (p Platform) IsWindows() bool {
	return p.GOOS == "windows"
}

// Extension returns the suffix of the launcher script on this platform.
func (p Platform) Extension() string {
	if p.IsWindows() {
		return windowsScriptExtension
	}
	return ""
}

// Locate computes where the executable of a provisioned version lives:
// <root>/<tool>-<version>/bin/<tool>[.bat].
// It doesn't touch the filesystem.
func Locate(root, tool, version string, platform Platform) string {
	return filepath.Join(root, tool+"-"+version, "bin", tool+platform.Extension())
}
