// Package catalog reads the version index published next to a maven artifact
// (maven-metadata.xml) and exposes the release and the list of versions.
package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	releaseElement  = "release"
	versionsElement = "versions"
)

// Catalog is the parsed form of a version index document.
type Catalog struct {
	release  string
	versions []string
}

// New builds a catalog from already known values.
func New(release string, versions ...string) *Catalog {
	return &Catalog{release: release, versions: versions}
}

// Parse reads a version index document.
// Any element named "release" provides the release version, when there are
// several the last one wins. Elements named "versions" list the supported
// versions in their direct children; when there are several, the one opened
// last in document order wins. Content after the root element is rejected.
func Parse(document []byte) (*Catalog, error) {
	decoder := xml.NewDecoder(bytes.NewReader(document))

	type container struct {
		depth int
		items []string
	}

	var (
		cat     Catalog
		sawroot bool
		closed  bool
		depth   int
		open    []*container // versions containers currently open, innermost last
		chosen  *container   // versions container opened last
		text    strings.Builder
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Err: err}
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if closed {
				return nil, &ParseError{Err: fmt.Errorf("unexpected element %s after the root element", tok.Name.Local)}
			}
			sawroot = true
			depth++
			text.Reset()
			if tok.Name.Local == versionsElement {
				chosen = &container{depth: depth}
				open = append(open, chosen)
			}

		case xml.CharData:
			if closed {
				if len(bytes.TrimSpace(tok)) > 0 {
					return nil, &ParseError{Err: errors.New("unexpected text after the root element")}
				}
				continue
			}
			text.Write(tok)

		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			if tok.Name.Local == releaseElement {
				cat.release = value
			}
			if n := len(open); n > 0 {
				switch top := open[n-1]; {
				case top.depth == depth:
					open = open[:n-1]
				case top.depth == depth-1:
					top.items = append(top.items, value)
				}
			}
			text.Reset()
			depth--
			if depth == 0 {
				closed = true
			}
		}
	}

	if !sawroot {
		return nil, &ParseError{Err: errors.New("document has no root element")}
	}

	if chosen != nil {
		cat.versions = chosen.items
	}

	return &cat, nil
}

// Latest returns the release version advertised by the catalog.
func (c *Catalog) Latest() (string, error) {
	if c.release == "" {
		return "", &MissingFieldError{Field: releaseElement}
	}
	return c.release, nil
}

// Supported returns every version listed by the catalog in document order.
func (c *Catalog) Supported() []string {
	return slices.Clone(c.versions)
}

// Contains reports if version is listed by the catalog.
func (c *Catalog) Contains(version string) bool {
	return slices.Contains(c.versions, version)
}
