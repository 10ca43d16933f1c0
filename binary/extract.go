package binary

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EntryStatus is the outcome of extracting a single archive entry.
type EntryStatus int

const (
	EntryExtracted EntryStatus = iota
	// EntrySkipped marks entries whose target was busy or locked, e.g. the
	// launcher script of a version that is currently running.
	EntrySkipped
	EntryFailed
)

func (s EntryStatus) String() string {
	switch s {
	case EntryExtracted:
		return "extracted"
	case EntrySkipped:
		return "skipped"
	case EntryFailed:
		return "failed"
	default:
		return fmt.Sprintf("EntryStatus(%d)", int(s))
	}
}

// Entry records what happened to one archive member.
type Entry struct {
	Name   string
	Status EntryStatus
	Err    error
}

// Extraction holds one entry per processed archive member, in archive order.
type Extraction []Entry

// Names returns the name of every processed entry.
func (e Extraction) Names() []string {
	names := make([]string, 0, len(e))
	for _, entry := range e {
		names = append(names, entry.Name)
	}
	return names
}

// Extracted returns the entries written to disk.
func (e Extraction) Extracted() Extraction {
	return e.with(EntryExtracted)
}

// Skipped returns the entries left untouched because their target was busy.
func (e Extraction) Skipped() Extraction {
	return e.with(EntrySkipped)
}

func (e Extraction) with(status EntryStatus) Extraction {
	var filtered Extraction
	for _, entry := range e {
		if entry.Status == status {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// handles .zip files
func unzip(archive, destination string) (Extraction, error) {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, &ExtractionError{Archive: archive, Err: fmt.Errorf("failed to open zip: %w", err)}
	}
	defer reader.Close()

	root, err := filepath.Abs(destination)
	if err != nil {
		return nil, &ExtractionError{Archive: archive, Err: err}
	}

	extraction := make(Extraction, 0, len(reader.File))

	for _, file := range reader.File {
		err := extractEntry(file, root)

		switch {
		case err == nil:
			extraction = append(extraction, Entry{Name: file.Name, Status: EntryExtracted})
		case isBusy(err):
			logdetail(fmt.Sprintf("  skipped %s: %s", file.Name, err))
			extraction = append(extraction, Entry{Name: file.Name, Status: EntrySkipped, Err: err})
		default:
			extraction = append(extraction, Entry{Name: file.Name, Status: EntryFailed, Err: err})
			return extraction, &ExtractionError{Archive: archive, Entry: file.Name, Err: err}
		}
	}

	return extraction, nil
}

func extractEntry(file *zip.File, root string) error {
	target := filepath.Join(root, filepath.FromSlash(file.Name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return fmt.Errorf("entry escapes destination directory")
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}

	contents, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", file.Name, err)
	}
	defer contents.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}

	// the open mode only applies to new files
	if err := out.Chmod(0o755); err != nil {
		out.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", target, err)
	}

	if _, err := io.Copy(out, contents); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy data to file %s: %w", target, err)
	}

	return out.Close()
}

// entries failing with permission denied are treated as locked
func isBusy(err error) bool {
	return errors.Is(err, os.ErrPermission) || isLocked(err)
}
