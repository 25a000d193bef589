package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

const _maxImageSize = 64 * 1024 * 1024 // 64 MB

// FileLoader reads photo data from the local filesystem
type FileLoader struct {
	logger  *zap.Logger
	maxSize int64
}

// NewFileLoader creates a new filesystem-backed loader
func NewFileLoader(logger *zap.Logger) *FileLoader {
	return &FileLoader{
		logger:  logger,
		maxSize: _maxImageSize,
	}
}

// Load reads the file at path, refusing anything that is not an image or
// is larger than the size limit
func (l *FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit to tell "exactly at limit" from "too big"
	data, err := io.ReadAll(io.LimitReader(f, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("file exceeds %d bytes", l.maxSize)
	}

	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("file is not an image: %s", ct)
	}

	l.logger.Debug("Photo loaded", zap.Int("bytes", len(data)), zap.String("path", path))
	return data, nil
}
