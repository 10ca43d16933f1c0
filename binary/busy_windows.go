//go:build windows

package binary

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isLocked reports writes rejected because another process holds the file open.
func isLocked(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
