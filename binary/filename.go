package binary

import (
	"net/http"
	"regexp"
	"strings"
)

// name used when the response doesn't suggest one
const fallbackName = "driver"

var filenamePattern = regexp.MustCompile(`filename=(.+)`)

// artifactName derives the archive filename from the Content-Disposition header.
//   - header missing: driver.zip
//   - header without a filename token: driver.exe
//
// Quotes around the name are removed.
func artifactName(header http.Header) string {
	values := header.Values("Content-Disposition")
	if len(values) == 0 {
		return fallbackName + ".zip"
	}

	match := filenamePattern.FindStringSubmatch(values[0])
	if match == nil {
		return fallbackName + ".exe"
	}

	return strings.ReplaceAll(match[1], `"`, "")
}
