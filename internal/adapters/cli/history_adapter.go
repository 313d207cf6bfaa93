package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// HistoryAdapter translates history commands to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List prints recorded runs, newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.RunFilters) ([]*primary.GenerationRun, error) {
	runs, err := a.service.ListRuns(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No generation runs recorded.")
		return runs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tGENERATOR\tNAME\tSTATUS\tWRITTEN\tSKIPPED\tCREATED")
	fmt.Fprintln(w, "--\t---------\t----\t------\t-------\t-------\t-------")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Generator,
			run.Name,
			status(run),
			run.FilesWritten,
			run.FilesSkipped,
			run.CreatedAt,
		)
	}
	w.Flush()
	return runs, nil
}

// Show prints one run with its errors.
func (a *HistoryAdapter) Show(ctx context.Context, id string) (*primary.GenerationRun, error) {
	run, err := a.service.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	fmt.Fprintf(a.out, "\nRun: %s\n", run.ID)
	fmt.Fprintf(a.out, "Command:   %s\n", run.Command)
	fmt.Fprintf(a.out, "Generator: %s\n", run.Generator)
	fmt.Fprintf(a.out, "Name:      %s\n", run.Name)
	fmt.Fprintf(a.out, "Project:   %s\n", run.ProjectPath)
	fmt.Fprintf(a.out, "Status:    %s\n", status(run))
	fmt.Fprintf(a.out, "Files:     %d written, %d skipped\n", run.FilesWritten, run.FilesSkipped)
	fmt.Fprintf(a.out, "Created:   %s\n", run.CreatedAt)
	if len(run.Errors) > 0 {
		fmt.Fprintln(a.out, "Errors:")
		for i, msg := range run.Errors {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, msg)
		}
	}
	fmt.Fprintln(a.out)
	return run, nil
}

// Clear deletes all recorded runs.
func (a *HistoryAdapter) Clear(ctx context.Context) (int, error) {
	n, err := a.service.ClearRuns(ctx)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ Cleared %d run(s)\n", n)
	return n, nil
}

func status(run *primary.GenerationRun) string {
	if run.Success {
		return "ok"
	}
	return fmt.Sprintf("failed (%d)", run.ErrorCount)
}
