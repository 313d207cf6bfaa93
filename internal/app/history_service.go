package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	runRepo secondary.GenerationRunRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(runRepo secondary.GenerationRunRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		runRepo: runRepo,
	}
}

// ListRuns lists recorded runs, newest first.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.GenerationRun, error) {
	records, err := s.runRepo.List(ctx, secondary.GenerationRunFilters{
		Generator:   filters.Generator,
		ProjectPath: filters.ProjectPath,
		FailedOnly:  filters.FailedOnly,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}

	runs := make([]*primary.GenerationRun, len(records))
	for i, r := range records {
		runs[i] = s.recordToRun(r)
	}
	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *HistoryServiceImpl) GetRun(ctx context.Context, id string) (*primary.GenerationRun, error) {
	record, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToRun(record), nil
}

// ClearRuns deletes every recorded run.
func (s *HistoryServiceImpl) ClearRuns(ctx context.Context) (int, error) {
	n, err := s.runRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear generation runs: %w", err)
	}
	return n, nil
}

func (s *HistoryServiceImpl) recordToRun(r *secondary.GenerationRunRecord) *primary.GenerationRun {
	var errs []string
	if r.Errors != "" {
		errs = strings.Split(r.Errors, "\n")
	}
	return &primary.GenerationRun{
		ID:           r.ID,
		Command:      r.Command,
		Generator:    r.Generator,
		Name:         r.Name,
		ProjectPath:  r.ProjectPath,
		Success:      r.Success,
		FilesWritten: r.FilesWritten,
		FilesSkipped: r.FilesSkipped,
		ErrorCount:   r.ErrorCount,
		Errors:       errs,
		CreatedAt:    r.CreatedAt,
	}
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
