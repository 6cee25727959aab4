// Package adapter contains infrastructure adapters for the exportscan CLI.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentAdapter loads document files as in-memory subjects for the scanner.
// It hides direct `os` access so the workflow can be tested without the disk.
type DocumentAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// Decode turns document content into a value graph, choosing the format
	// from the file extension of path.
	Decode(ctx context.Context, path m.Path, content []byte) (any, error)
}

// LocalDocumentAdapter reads documents from the local filesystem.
type LocalDocumentAdapter struct{}

// NewLocalDocumentAdapter constructs a LocalDocumentAdapter.
func NewLocalDocumentAdapter() *LocalDocumentAdapter {
	return &LocalDocumentAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalDocumentAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// Decode parses YAML, TOML or JSON content.
func (a *LocalDocumentAdapter) Decode(ctx context.Context, path m.Path, content []byte) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		doc any
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(string(path))); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &doc)
	case ".toml":
		err = toml.Unmarshal(content, &doc)
	case ".json":
		err = json.Unmarshal(content, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return doc, nil
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(ctx context.Context, a DocumentAdapter, path m.Path) (any, error) {
	content, err := a.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return a.Decode(ctx, path, content)
}
