//go:build !unix && !windows

package binary

func isLocked(error) bool { return false }
