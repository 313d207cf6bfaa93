package secondary

import "context"

// GenerationRunRepository defines the secondary port for generation history persistence.
type GenerationRunRepository interface {
	// Create persists a new run.
	Create(ctx context.Context, run *GenerationRunRecord) error

	// GetByID retrieves a run by its ID.
	GetByID(ctx context.Context, id string) (*GenerationRunRecord, error)

	// List retrieves runs matching the given filters, newest first.
	List(ctx context.Context, filters GenerationRunFilters) ([]*GenerationRunRecord, error)

	// DeleteAll removes every run and returns the number removed.
	DeleteAll(ctx context.Context) (int, error)
}

// GenerationRunRecord represents a generation run as stored in persistence.
type GenerationRunRecord struct {
	ID           string
	Command      string
	Generator    string
	Name         string
	ProjectPath  string
	Success      bool
	FilesWritten int
	FilesSkipped int
	ErrorCount   int
	Errors       string // newline-separated
	CreatedAt    string
}

// GenerationRunFilters contains filter options for querying runs.
type GenerationRunFilters struct {
	Generator   string
	ProjectPath string
	FailedOnly  bool
	Limit       int
}
