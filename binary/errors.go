package binary

import (
	"fmt"
	"strings"
)

// UnsupportedVersionError is returned when the requested version is not listed
// in the remote catalog.
type UnsupportedVersionError struct {
	Version   string
	Supported []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf(
		"version %s is not supported; supported versions are: %s",
		e.Version, strings.Join(e.Supported, ", "),
	)
}

// NetworkError wraps any transport failure while talking to the remote origin.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when an archive entry can't be extracted
// for a reason other than the target being busy.
type ExtractionError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("failed to extract %s: %s", e.Archive, e.Err)
	}
	return fmt.Sprintf("failed to extract %s from %s: %s", e.Entry, e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
