package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type Binary struct {
	name    string
	version string

	root     string
	platform Platform
	policy   Policy

	origin Origin
}

// New defines a binary called name, pinned to version, provisioned from origin.
func New(name, version string, origin Origin, options ...Option) (*Binary, error) {
	if name == "" {
		return nil, fmt.Errorf("name must be set")
	}
	if version == "" {
		return nil, fmt.Errorf("version must be set")
	}

	bin := Binary{
		name:     name,
		version:  version,
		root:     filepath.FromSlash("./.dist"),
		platform: Host(),
		origin:   origin,
	}

	for _, opt := range options {
		opt(&bin)
	}

	return &bin, nil
}

func (b *Binary) Name() string {
	return b.name
}

// Version returns the pinned version.
func (b *Binary) Version() string {
	return b.version
}

// BinPath returns the path to the launcher script.
// When only the override version is installed its path is returned,
// otherwise the pinned one, whether it exists or not.
func (b *Binary) BinPath() string {
	if path, ok := b.installed(); ok {
		return path
	}
	return b.template().Cmd
}

// Ensure makes sure the binary is present in the cache directory and returns its path.
// When it's already there no network call is made; otherwise the catalog is consulted
// to choose the version, which is then downloaded and extracted.
func (b *Binary) Ensure(ctx context.Context) (string, error) {
	if path, ok := b.installed(); ok {
		return path, nil
	}

	return b.Install(ctx)
}

// Install downloads and extracts the binary regardless of what the cache holds.
func (b *Binary) Install(ctx context.Context) (string, error) {
	logstep(fmt.Sprintf("installing %s", b.name))

	cat, err := b.origin.Catalog(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog: %w", err)
	}

	latest, err := cat.Latest()
	if err != nil {
		return "", err
	}

	version, err := b.policy.Select(b.version, latest)
	if err != nil {
		return "", fmt.Errorf("failed to select version: %w", err)
	}

	if version != b.version {
		logdetail(fmt.Sprintf("%s is outdated, latest release is %s; using %s", b.version, latest, version))
	}

	template := b.template().WithVersion(version)

	artifact, err := b.origin.Fetch(ctx, template, cat)
	if err != nil {
		return "", err
	}

	archive, err := Persist(artifact, b.root)
	if err != nil {
		return "", err
	}

	extraction, err := archive.Extract(b.root)
	if err != nil {
		return "", err
	}

	if skipped := extraction.Skipped(); len(skipped) > 0 {
		logdetail(fmt.Sprintf("%d entries were busy and left untouched", len(skipped)))
	}

	if !exists(template.Cmd) {
		logwarn(fmt.Sprintf("%s not found after extracting %s", template.Cmd, filepath.Base(archive.Path)))
	}

	return template.Cmd, nil
}

func (b *Binary) template() Template {
	return newTemplate(b.root, b.name, b.version, b.platform)
}

// installed looks for the pinned version first, then for the override.
// Neither needs the network, so this is always safe to call.
func (b *Binary) installed() (string, bool) {
	candidates := []string{b.version}
	if b.policy.Override != "" && b.policy.Override != b.version {
		candidates = append(candidates, b.policy.Override)
	}

	for _, version := range candidates {
		path := Locate(b.root, b.name, version, b.platform)
		if exists(path) {
			return path, true
		}
	}

	return "", false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
