// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

// ProjectFS implements secondary.FileRepository on top of an afero filesystem.
type ProjectFS struct {
	fs afero.Fs
}

// NewProjectFS creates a new filesystem adapter. A nil fs selects the OS filesystem.
func NewProjectFS(fs afero.Fs) *ProjectFS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ProjectFS{fs: fs}
}

// Fs returns the underlying filesystem.
func (a *ProjectFS) Fs() afero.Fs {
	return a.fs
}

// Exists checks if a file or directory exists.
func (a *ProjectFS) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(a.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return ok, nil
}

// DirExists checks if a directory exists.
func (a *ProjectFS) DirExists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.DirExists(a.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check directory %s: %w", path, err)
	}
	return ok, nil
}

// ReadFile reads a whole file.
func (a *ProjectFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data, replacing any existing content.
func (a *ProjectFS) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := afero.WriteFile(a.fs, path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates a directory with all parent directories.
func (a *ProjectFS) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	if err := a.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// Ensure ProjectFS implements the interface
var _ secondary.FileRepository = (*ProjectFS)(nil)
