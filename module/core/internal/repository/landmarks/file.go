package landmarks

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

var _ landmark.Source = (*FileSource)(nil)

type FileSource struct {
	Path string
}

func (s *FileSource) Read(_ context.Context) ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open landmarks file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read landmarks file: %w", err)
	}
	return data, nil
}
