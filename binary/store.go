package binary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// Archive references an artifact persisted in the cache directory.
type Archive struct {
	Path string
}

// Persist writes the artifact into root, creating it if needed.
// An existing file with the same name is overwritten.
func Persist(artifact *Artifact, root string) (*Archive, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", root, err)
	}

	// only the base name is honoured; the name comes from a response header
	target := filepath.Join(root, filepath.Base(filepath.FromSlash(artifact.Filename)))

	if err := os.WriteFile(target, artifact.Content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write archive %s: %w", target, err)
	}

	return &Archive{Path: target}, nil
}

// Extract unpacks the archive into destination.
// Archives whose extension isn't recognized are left untouched and an empty
// extraction is returned.
// Entries that can't be written because the target is busy are skipped; any other
// failure aborts the extraction and is returned as an [ExtractionError] alongside
// the entries processed so far.
func (a *Archive) Extract(destination string) (extraction Extraction, err error) {
	if !isSupportedExt(a.Path) {
		logdetail(fmt.Sprintf("skipping extraction of %s, unsupported format", filepath.Base(a.Path)))
		return nil, nil
	}

	logdetail(fmt.Sprintf("extracting %s", a.Path))
	defer timed(&err)()

	return unzip(a.Path, destination)
}

// isSupportedExt checks if the archive extension is a format that can be extracted.
func isSupportedExt(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}

	return filetype.GetType(ext) == matchers.TypeZip
}
