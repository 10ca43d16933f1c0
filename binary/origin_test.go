package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexvir/allure/catalog"
)

const testMetadata = `<metadata>
  <versioning>
    <release>2.14.1</release>
    <versions>
      <version>2.13.8</version>
      <version>2.14.1</version>
    </versions>
  </versioning>
</metadata>`

// repository serves a maven style catalog and archives, counting every request.
type repository struct {
	server   *httptest.Server
	metadata string
	archive  []byte
	header   string

	catalogRequests atomic.Int32
	archiveRequests atomic.Int32
}

func newRepository(t *testing.T, archive []byte) *repository {
	t.Helper()

	repo := &repository{metadata: testMetadata, archive: archive}

	mux := http.NewServeMux()
	mux.HandleFunc("/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		repo.catalogRequests.Add(1)
		w.Write([]byte(repo.metadata))
	})
	mux.HandleFunc("/archives/", func(w http.ResponseWriter, r *http.Request) {
		repo.archiveRequests.Add(1)
		if repo.header != "" {
			w.Header().Set("Content-Disposition", repo.header)
		}
		w.Write(repo.archive)
	})

	repo.server = httptest.NewServer(mux)
	t.Cleanup(repo.server.Close)

	return repo
}

func (r *repository) origin() Origin {
	return RemoteArchive(
		r.server.URL+"/maven-metadata.xml",
		r.server.URL+"/archives/{{.Version}}/allure-commandline-{{.Version}}.zip",
		r.server.Client(),
	)
}

func (r *repository) requests() int32 {
	return r.catalogRequests.Load() + r.archiveRequests.Load()
}

func TestRemoteArchive(t *testing.T) {
	origin := RemoteArchive("https://example.com/maven-metadata.xml", "https://example.com/{{.Version}}.zip", nil)

	require.NotNil(t, origin)

	// Check it implements Origin interface
	var _ Origin = origin
}

func TestRemoteArchive_Catalog(t *testing.T) {
	repo := newRepository(t, nil)

	cat, err := repo.origin().Catalog(context.Background())
	require.NoError(t, err)

	latest, err := cat.Latest()
	require.NoError(t, err)
	assert.Equal(t, "2.14.1", latest)
	assert.Equal(t, []string{"2.13.8", "2.14.1"}, cat.Supported())
	assert.EqualValues(t, 1, repo.catalogRequests.Load())
}

func TestRemoteArchive_Catalog_ParseError(t *testing.T) {
	repo := newRepository(t, nil)
	repo.metadata = "<metadata><release>"

	_, err := repo.origin().Catalog(context.Background())

	var perr *catalog.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestRemoteArchive_Catalog_HTTPError(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		),
	)
	defer server.Close()

	origin := RemoteArchive(server.URL+"/maven-metadata.xml", server.URL+"/{{.Version}}.zip", server.Client())

	_, err := origin.Catalog(context.Background())

	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Contains(t, err.Error(), "unexpected response")
	assert.Equal(t, server.URL+"/maven-metadata.xml", nerr.URL)
}

func TestRemoteArchive_Catalog_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := RemoteArchive(url+"/maven-metadata.xml", url+"/{{.Version}}.zip", nil).Catalog(context.Background())

	var nerr *NetworkError
	assert.True(t, errors.As(err, &nerr))
}

func TestRemoteArchive_Fetch(t *testing.T) {
	archive := allureArchive(t, "2.14.1")
	repo := newRepository(t, archive)
	repo.header = `attachment; filename="allure-commandline-2.14.1.zip"`

	cat := catalog.New("2.14.1", "2.13.8", "2.14.1")
	template := newTemplate(t.TempDir(), "allure", "2.14.1", Host())

	artifact, err := repo.origin().Fetch(context.Background(), template, cat)
	require.NoError(t, err)

	assert.Equal(t, archive, artifact.Content)
	assert.Equal(t, "allure-commandline-2.14.1.zip", artifact.Filename)
	assert.EqualValues(t, 1, repo.archiveRequests.Load())
}

func TestRemoteArchive_Fetch_Filename(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "quoted filename", header: `attachment; filename="x.zip"`, expected: "x.zip"},
		{name: "unquoted filename", header: "attachment; filename=x.zip", expected: "x.zip"},
		{name: "missing header", header: "", expected: "driver.zip"},
		{name: "header without filename", header: "attachment", expected: "driver.exe"},
	}

	for _, test := range tests {
		t.Run(test.name,
			func(t *testing.T) {
				repo := newRepository(t, []byte("content"))
				repo.header = test.header

				cat := catalog.New("2.14.1", "2.14.1")
				template := newTemplate(t.TempDir(), "allure", "2.14.1", Host())

				artifact, err := repo.origin().Fetch(context.Background(), template, cat)
				require.NoError(t, err)
				assert.Equal(t, test.expected, artifact.Filename)
			},
		)
	}
}

func TestRemoteArchive_Fetch_UnsupportedVersion(t *testing.T) {
	repo := newRepository(t, []byte("content"))

	cat := catalog.New("2.14.1", "2.13.8", "2.14.1")
	template := newTemplate(t.TempDir(), "allure", "1.0.0", Host())

	_, err := repo.origin().Fetch(context.Background(), template, cat)

	var uerr *UnsupportedVersionError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "1.0.0", uerr.Version)
	assert.Equal(t, []string{"2.13.8", "2.14.1"}, uerr.Supported)
	assert.Contains(t, err.Error(), "2.13.8, 2.14.1")

	// the archive must never be requested
	assert.EqualValues(t, 0, repo.archiveRequests.Load())
}

func TestRemoteArchive_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		),
	)
	defer server.Close()

	origin := RemoteArchive(server.URL+"/maven-metadata.xml", server.URL+"/{{.Version}}.zip", server.Client())
	cat := catalog.New("2.14.1", "2.14.1")

	_, err := origin.Fetch(context.Background(), newTemplate(t.TempDir(), "allure", "2.14.1", Host()), cat)

	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, server.URL+"/2.14.1.zip", nerr.URL)
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name     string
		header   http.Header
		expected string
	}{
		{name: "attachment", header: http.Header{"Content-Disposition": {`attachment; filename="x.zip"`}}, expected: "x.zip"},
		{name: "no header", header: http.Header{}, expected: "driver.zip"},
		{name: "empty header", header: http.Header{"Content-Disposition": {""}}, expected: "driver.exe"},
		{name: "inline", header: http.Header{"Content-Disposition": {"inline"}}, expected: "driver.exe"},
		{name: "quotes anywhere are dropped", header: http.Header{"Content-Disposition": {`attachment; filename=a"b".zip`}}, expected: "ab.zip"},
	}

	for _, test := range tests {
		t.Run(test.name,
			func(t *testing.T) {
				assert.Equal(t, test.expected, artifactName(test.header))
			},
		)
	}
}

func TestProgress(t *testing.T) {
	t.Run("returns wrapped reader and finish function", func(t *testing.T) {
		content := []byte("test content")
		reader := &testReader{data: content}

		wrapped, finish := progress(reader, int64(len(content)))

		require.NotNil(t, wrapped)
		require.NotNil(t, finish)

		buf := make([]byte, len(content))
		n, err := wrapped.Read(buf)
		assert.NoError(t, err)
		assert.Equal(t, len(content), n)
		assert.Equal(t, content, buf)

		assert.NotPanics(t, func() {
			finish()
		})
	})
}

// testReader is a simple io.Reader for testing
type testReader struct {
	data []byte
	pos  int
}

func (r *testReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.data) {
		return 0, nil
	}

	n = copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
