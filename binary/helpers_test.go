package binary

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type zipentry struct {
	name    string
	content string
}

// zipArchive builds an in memory zip; names ending in "/" become directories.
func zipArchive(t *testing.T, entries ...zipentry) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, entry := range entries {
		w, err := writer.Create(entry.name)
		require.NoError(t, err)
		if entry.content != "" {
			_, err = w.Write([]byte(entry.content))
			require.NoError(t, err)
		}
	}

	require.NoError(t, writer.Close())
	return buf.Bytes()
}

// allureArchive mimics the layout of the allure-commandline distribution.
func allureArchive(t *testing.T, version string) []byte {
	t.Helper()

	root := "allure-" + version + "/"
	return zipArchive(t,
		zipentry{name: root},
		zipentry{name: root + "bin/"},
		zipentry{name: root + "bin/allure", content: "#!/bin/sh\necho allure " + version + "\n"},
		zipentry{name: root + "bin/allure.bat", content: "@echo allure " + version + "\r\n"},
		zipentry{name: root + "lib/allure-commandline.jar", content: "jar"},
	)
}
