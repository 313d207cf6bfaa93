package secondary

import (
	"context"
	"os"
)

// FileRepository defines the secondary port for reading and writing project files.
type FileRepository interface {
	// Exists reports whether a file or directory exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// DirExists reports whether a directory exists at path.
	DirExists(ctx context.Context, path string) (bool, error)

	// ReadFile returns the contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile creates or truncates the file at path.
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error
}

// TemplateRenderer defines the secondary port for rendering templates.
type TemplateRenderer interface {
	// Render executes the template identified by name with data.
	Render(name string, data map[string]any) (string, error)

	// List returns the template files beneath dir, relative to dir.
	List(dir string) ([]string, error)
}
