package primary

import "context"

// HistoryService defines the primary port for the generation journal.
type HistoryService interface {
	// ListRuns lists recorded generation runs, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*GenerationRun, error)

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*GenerationRun, error)

	// ClearRuns deletes all recorded runs and returns how many were removed.
	ClearRuns(ctx context.Context) (int, error)
}

// GenerationRun is a recorded generation run.
type GenerationRun struct {
	ID           string
	Command      string
	Generator    string
	Name         string
	ProjectPath  string
	Success      bool
	FilesWritten int
	FilesSkipped int
	ErrorCount   int
	Errors       []string
	CreatedAt    string
}

// RunFilters contains filter options for listing runs.
type RunFilters struct {
	Generator   string
	ProjectPath string
	FailedOnly  bool
	Limit       int
}
