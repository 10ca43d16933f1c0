package binary

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Comparison selects how two version strings are ordered.
type Comparison int

const (
	// DigitConcat drops every dot and compares the remaining digits as a single
	// integer. "2.13.8" becomes 2138.
	// This is not a semantic ordering: "2.9.10" (2910) sorts after "2.10.1" (2101).
	DigitConcat Comparison = iota
	// Semantic compares every dot separated segment numerically.
	Semantic
)

// Policy decides which version gets provisioned given the pinned version
// and the latest release advertised by the catalog.
type Policy struct {
	// Override is the version provisioned when the pinned one is outdated.
	// When empty, the catalog release is used instead.
	Override   string
	Comparison Comparison
}

// ShouldUpgrade reports if pinned is older than latest.
func (p Policy) ShouldUpgrade(pinned, latest string) (bool, error) {
	switch p.Comparison {
	case Semantic:
		a, b := "v"+pinned, "v"+latest
		if !semver.IsValid(a) {
			return false, fmt.Errorf("invalid version %q", pinned)
		}
		if !semver.IsValid(b) {
			return false, fmt.Errorf("invalid version %q", latest)
		}
		return semver.Compare(a, b) < 0, nil

	default:
		a, err := concatenated(pinned)
		if err != nil {
			return false, err
		}
		b, err := concatenated(latest)
		if err != nil {
			return false, err
		}
		return a < b, nil
	}
}

// Select returns the version that should be provisioned.
func (p Policy) Select(pinned, latest string) (string, error) {
	upgrade, err := p.ShouldUpgrade(pinned, latest)
	if err != nil {
		return "", err
	}

	if !upgrade {
		return pinned, nil
	}

	if p.Override == "" {
		return latest, nil
	}
	return p.Override, nil
}

func concatenated(version string) (int, error) {
	value, err := strconv.Atoi(strings.ReplaceAll(version, ".", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return value, nil
}
