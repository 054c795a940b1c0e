package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

// Put writes data under the base path and returns the key, which is what
// gets stored on stands and check-ins.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile -> %w", err)
	}

	zap.L().Debug("stored object", zap.String("path", fullPath), zap.Int("bytes", len(data)))

	return strings.TrimPrefix(clean, "/"), nil
}

// Dir is served read-only under /uploads.
func (s *LocalStore) Dir() string {
	return s.basePath
}
