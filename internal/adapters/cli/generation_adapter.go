// Package cli contains the adapters that turn service results into terminal output.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// ErrGenerationFailed is returned when a run finished with errors. The errors have
// already been printed by the adapter.
var ErrGenerationFailed = errors.New("generation failed")

// GenerationAdapter is a thin adapter that translates CLI operations to GenerationService calls.
// It depends only on the GenerationService interface, enabling easy testing with mocks.
type GenerationAdapter struct {
	service primary.GenerationService
	out     io.Writer
}

// NewGenerationAdapter creates a new GenerationAdapter with the given service.
func NewGenerationAdapter(service primary.GenerationService, out io.Writer) *GenerationAdapter {
	return &GenerationAdapter{
		service: service,
		out:     out,
	}
}

// Generate runs a generator and prints one line per file, a banner and any errors.
// A failed run returns ErrGenerationFailed.
func (a *GenerationAdapter) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
	result, err := a.service.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	a.printFiles(result)

	if !result.Success {
		fmt.Fprintln(a.out, failureBanner.Render(fmt.Sprintf("✗ %s failed with %d error(s)", label(req), len(result.Errors))))
		for i, msg := range result.Errors {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, msg)
		}
		if hint := failureHint(result); hint != "" {
			fmt.Fprintln(a.out, hintStyle.Render("  "+hint))
		}
		return result, fmt.Errorf("%w: %d error(s)", ErrGenerationFailed, len(result.Errors))
	}

	if result.DryRun {
		fmt.Fprintln(a.out, successBanner.Render(fmt.Sprintf("✓ Dry run of %s: nothing was written", label(req))))
	} else {
		fmt.Fprintln(a.out, successBanner.Render(fmt.Sprintf("✓ %s complete (%d created, %d skipped, %d updated)",
			label(req), len(result.GeneratedFiles), len(result.SkippedFiles), len(result.PatchedFiles))))
	}

	if len(result.NextSteps) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, titleStyle.Render("Next steps:"))
		for _, step := range result.NextSteps {
			fmt.Fprintf(a.out, "  %s\n", step)
		}
	}
	return result, nil
}

func (a *GenerationAdapter) printFiles(result *primary.GenerationResult) {
	for _, f := range result.GeneratedFiles {
		fmt.Fprintf(a.out, "  %s %s\n", markCreated, f)
	}
	for _, f := range result.PlannedFiles {
		fmt.Fprintf(a.out, "  %s %s\n", markPlanned, f)
	}
	for _, f := range result.SkippedFiles {
		fmt.Fprintf(a.out, "  %s %s (exists, use --force to overwrite)\n", markSkipped, f)
	}
	for _, f := range result.PatchedFiles {
		fmt.Fprintf(a.out, "  %s %s\n", markUpdated, f)
	}
	for _, f := range result.PlannedPatches {
		fmt.Fprintf(a.out, "  %s %s\n", markPatch, f)
	}
	for _, err := range result.Failures {
		// Fatal errors are listed once under the banner.
		if !generation.IsFatal(err) {
			fmt.Fprintf(a.out, "  %s %s\n", markFailed, err)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(a.out, "  %s %s\n", markWarning, warningStyle.Render(w))
	}
}

func failureHint(result *primary.GenerationResult) string {
	for _, err := range result.Failures {
		switch {
		case generation.KindOf(err) == generation.MissingRequiredField:
			return "Run the command with --help to see its arguments."
		case generation.KindOf(err) == generation.UserInput && strings.Contains(err.Error(), "--fields"):
			return `--fields expects a JSON array, e.g. '[{"name":"title","type":"string","required":true}]'`
		}
	}
	return ""
}

func label(req primary.GenerateRequest) string {
	if req.Command != "" {
		return req.Command
	}
	return req.Generator
}

// ListGenerators prints the registered generators.
func (a *GenerationAdapter) ListGenerators(ctx context.Context) ([]*primary.GeneratorInfo, error) {
	infos, err := a.service.ListGenerators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list generators: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tREQUIRES\tTEMPLATES\tDESCRIPTION")
	fmt.Fprintln(w, "----\t--------\t---------\t-----------")
	for _, info := range infos {
		requires := strings.Join(info.Requires, ", ")
		if info.RequiresDomain {
			requires += " (existing domain)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", info.Type, requires, info.Templates, info.Description)
	}
	w.Flush()
	return infos, nil
}
