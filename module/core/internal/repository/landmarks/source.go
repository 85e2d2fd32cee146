package landmarks

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

// maxDocumentSize caps how much of a landmarks document is read.
const maxDocumentSize = 10 << 20

// NewSource picks a source from a URI: s3://bucket/key, http(s)://..., file://path
// or a bare filesystem path. fetcher may be nil when no object storage is configured.
func NewSource(uri string, fetcher ObjectFetcher) (landmark.Source, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errors.New("landmarks source: empty uri")
	}

	if !strings.Contains(uri, "://") {
		return &FileSource{Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("landmarks source: %w", err)
	}

	switch u.Scheme {
	case "file":
		return &FileSource{Path: u.Host + u.Path}, nil
	case "http", "https":
		return &HTTPSource{URL: uri, Client: &http.Client{Timeout: 10 * time.Second}}, nil
	case "s3":
		if fetcher == nil {
			return nil, errors.New("landmarks source: s3 requires object storage configuration")
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("landmarks source: %q must be s3://bucket/key", uri)
		}
		return &ObjectSource{Fetcher: fetcher, Bucket: u.Host, Key: key}, nil
	default:
		return nil, fmt.Errorf("landmarks source: unsupported scheme %q", u.Scheme)
	}
}
