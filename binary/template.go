package binary

import (
	"strings"
	"text/template"
)

// Template contains fields used to resolve specific metadata about the binary.
// It includes system architecture information, cache location details, and version information.
type Template struct {
	// GOOS is the operating system target (e.g., "linux", "darwin", "windows")
	GOOS string
	// GOARCH is the architecture target (e.g., "amd64", "arm64")
	GOARCH string

	// Directory is the cache root archives are stored and extracted in
	Directory string
	// Name of the tool
	Name string
	// Cmd is the qualified path to the launcher script for Version
	Cmd string
	// Version is the version being provisioned
	Version string
	// Extension is the launcher script extension.
	// Empty on unix systems and ".bat" on windows.
	Extension string
}

func newTemplate(root, tool, version string, platform Platform) Template {
	return Template{
		GOOS:      platform.GOOS,
		GOARCH:    platform.GOARCH,
		Directory: root,
		Name:      tool,
		Cmd:       Locate(root, tool, version, platform),
		Version:   version,
		Extension: platform.Extension(),
	}
}

// WithVersion returns a copy of the template pointing at a different version.
func (t Template) WithVersion(version string) Template {
	t.Version = version
	t.Cmd = Locate(t.Directory, t.Name, version, Platform{GOOS: t.GOOS, GOARCH: t.GOARCH})
	return t
}

// Resolve executes the provided format string as a template with the Template's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (t Template) Resolve(format string) (string, error) {
	tmpl, err := template.New("bin").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, t); err != nil {
		return "", err
	}

	return bld.String(), nil
}

// MustResolve executes the provided format string as a template with the Template's fields.
// Panics if the template can't be resolved correctly.
func (t Template) MustResolve(format string) string {
	resolved, err := t.Resolve(format)
	if err != nil {
		panic(err)
	}
	return resolved
}
