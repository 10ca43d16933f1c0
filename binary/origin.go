package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/aexvir/allure/catalog"
)

// Origin defines where versions of a binary are discovered and downloaded from.
type Origin interface {
	// Catalog retrieves the current list of published versions.
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	// Fetch downloads the archive for template.Version.
	// The version must be listed in the catalog.
	Fetch(ctx context.Context, template Template, cat *catalog.Catalog) (*Artifact, error)
}

// Transport performs http requests; *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Artifact is a downloaded archive held in memory.
type Artifact struct {
	Content  []byte
	Filename string
}

// remotearchive implements [Origin] for archives published in a maven style
// repository, where a metadata document lists every released version.
type remotearchive struct {
	catalogurl string
	urlformat  string
	transport  Transport
}

// RemoteArchive creates a new Origin that reads the version catalog from catalogURL
// and downloads archives from urlformat.
// The archive URL can contain template variables that will be resolved using the [Template]
// values during installation.
// e.g. "https://repo1.maven.org/maven2/io/qameta/allure/allure-commandline/{{.Version}}/allure-commandline-{{.Version}}.zip"
//
// When transport is nil, http.DefaultClient is used.
func RemoteArchive(catalogURL, urlformat string, transport Transport) Origin {
	if transport == nil {
		transport = http.DefaultClient
	}

	return &remotearchive{
		catalogurl: catalogURL,
		urlformat:  urlformat,
		transport:  transport,
	}
}

func (r *remotearchive) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	logdetail(fmt.Sprintf("reading versions from %s", r.catalogurl))

	resp, err := r.get(ctx, r.catalogurl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: r.catalogurl, Err: err}
	}

	return catalog.Parse(document)
}

func (r *remotearchive) Fetch(ctx context.Context, template Template, cat *catalog.Catalog) (_ *Artifact, err error) {
	if !cat.Contains(template.Version) {
		return nil, &UnsupportedVersionError{Version: template.Version, Supported: cat.Supported()}
	}

	url, err := template.Resolve(r.urlformat)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve URL: %w", err)
	}

	logdetail(fmt.Sprintf("downloading %s", url))

	defer timed(&err)()

	resp, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, finish := progress(resp.Body, resp.ContentLength)
	content, err := io.ReadAll(data)
	finish()
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	return &Artifact{Content: content, Filename: artifactName(resp.Header)}, nil
}

// get issues a GET request and rejects non 2xx responses.
// The caller is in charge of closing the body.
func (r *remotearchive) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	resp, err := r.transport.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected response: http%d", resp.StatusCode)}
	}

	return resp, nil
}

// progress wraps an io.Reader to display a progress bar when running in a terminal.
// Returns the wrapped reader and a function to finalize the progress display.
// The progress bar shows transfer speed and completion percentage.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetWriter(os.Stderr).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}
