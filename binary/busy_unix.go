//go:build unix

package binary

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isLocked reports writes rejected because the file is being executed.
func isLocked(err error) bool {
	return errors.Is(err, unix.ETXTBSY)
}
