package landmarks

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

var _ landmark.Source = (*HTTPSource)(nil)

type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Read(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build landmarks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch landmarks: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch landmarks: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read landmarks response: %w", err)
	}
	return data, nil
}
