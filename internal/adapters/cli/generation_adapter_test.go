package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// mockGenerationService implements primary.GenerationService for testing
type mockGenerationService struct {
	generateFn       func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error)
	listGeneratorsFn func(ctx context.Context) ([]*primary.GeneratorInfo, error)

	// Track calls for verification
	lastGenerateReq primary.GenerateRequest
}

func (m *mockGenerationService) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
	m.lastGenerateReq = req
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &primary.GenerationResult{Success: true}, nil
}

func (m *mockGenerationService) ListGenerators(ctx context.Context) ([]*primary.GeneratorInfo, error) {
	if m.listGeneratorsFn != nil {
		return m.listGeneratorsFn(ctx)
	}
	return nil, nil
}

func TestGenerationAdapter_Generate_Success(t *testing.T) {
	mock := &mockGenerationService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
			return &primary.GenerationResult{
				Success:        true,
				GeneratedFiles: []string{"src/domain/order/entities/order.entity.ts"},
				SkippedFiles:   []string{"src/application/dto/order.dto.ts"},
				PatchedFiles:   []string{"src/infrastructure/types.ts"},
				NextSteps:      []string{"Run 'npm test'"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewGenerationAdapter(mock, &buf)

	req := primary.GenerateRequest{Generator: "domain", Command: "generate:domain", DomainName: "order"}
	result, err := adapter.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if mock.lastGenerateReq.DomainName != "order" {
		t.Errorf("request not forwarded: %+v", mock.lastGenerateReq)
	}

	out := buf.String()
	for _, want := range []string{
		"created  src/domain/order/entities/order.entity.ts",
		"skipped  src/application/dto/order.dto.ts (exists, use --force to overwrite)",
		"updated  src/infrastructure/types.ts",
		"generate:domain complete (1 created, 1 skipped, 1 updated)",
		"Next steps:",
		"Run 'npm test'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerationAdapter_Generate_Failure(t *testing.T) {
	writeErr := generation.Wrap(generation.WriteFailure, errors.New("disk full"), "failed to write src/a.ts")
	mock := &mockGenerationService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
			return &primary.GenerationResult{
				GeneratedFiles: []string{"src/b.ts"},
				Errors:         []string{writeErr.Error()},
				Failures:       []error{writeErr},
				Warnings:       []string{"cannot update src/infrastructure/types.ts: file not found"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewGenerationAdapter(mock, &buf)

	_, err := adapter.Generate(context.Background(), primary.GenerateRequest{Generator: "domain"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}

	out := buf.String()
	for _, want := range []string{
		"failed   failed to write src/a.ts: disk full",
		"warning  cannot update src/infrastructure/types.ts: file not found",
		"domain failed with 1 error(s)",
		"1. failed to write src/a.ts: disk full",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerationAdapter_Generate_Hints(t *testing.T) {
	tests := []struct {
		name     string
		failure  error
		wantHint string
	}{
		{
			name:     "missing argument",
			failure:  generation.Errorf(generation.MissingRequiredField, "missing required argument: domain-name"),
			wantHint: "--help",
		},
		{
			name:     "bad fields",
			failure:  generation.Wrap(generation.UserInput, errors.New("invalid character"), "invalid --fields"),
			wantHint: "--fields expects a JSON array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockGenerationService{
				generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
					return &primary.GenerationResult{Errors: []string{tt.failure.Error()}, Failures: []error{tt.failure}}, nil
				},
			}
			var buf bytes.Buffer
			_, _ = NewGenerationAdapter(mock, &buf).Generate(context.Background(), primary.GenerateRequest{Generator: "domain"})
			if !strings.Contains(buf.String(), tt.wantHint) {
				t.Errorf("output missing hint %q:\n%s", tt.wantHint, buf.String())
			}
		})
	}
}

func TestGenerationAdapter_Generate_DryRun(t *testing.T) {
	mock := &mockGenerationService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
			return &primary.GenerationResult{
				Success:        true,
				DryRun:         true,
				PlannedFiles:   []string{"src/a.ts"},
				PlannedPatches: []string{"src/infrastructure/container.ts"},
			}, nil
		},
	}
	var buf bytes.Buffer
	if _, err := NewGenerationAdapter(mock, &buf).Generate(context.Background(), primary.GenerateRequest{Generator: "domain", DryRun: true}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"would create  src/a.ts", "would update  src/infrastructure/container.ts", "nothing was written"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerationAdapter_Generate_ServiceError(t *testing.T) {
	mock := &mockGenerationService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
			return nil, context.Canceled
		},
	}
	var buf bytes.Buffer
	_, err := NewGenerationAdapter(mock, &buf).Generate(context.Background(), primary.GenerateRequest{Generator: "domain"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestGenerationAdapter_ListGenerators(t *testing.T) {
	mock := &mockGenerationService{
		listGeneratorsFn: func(ctx context.Context) ([]*primary.GeneratorInfo, error) {
			return []*primary.GeneratorInfo{
				{Type: "domain", Requires: []string{"domain-name"}, Templates: 14, Description: "Complete domain slice"},
				{Type: "entity", Requires: []string{"domain-name", "entity-name"}, RequiresDomain: true, Templates: 2, Description: "Domain entity"},
			}, nil
		},
	}
	var buf bytes.Buffer
	infos, err := NewGenerationAdapter(mock, &buf).ListGenerators(context.Background())
	if err != nil {
		t.Fatalf("ListGenerators() error = %v", err)
	}
	if len(infos) != 2 {
		t.Errorf("got %d generators", len(infos))
	}

	out := buf.String()
	for _, want := range []string{"TYPE", "domain", "domain-name, entity-name (existing domain)", "Complete domain slice"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerationAdapter_ListGenerators_Error(t *testing.T) {
	mock := &mockGenerationService{
		listGeneratorsFn: func(ctx context.Context) ([]*primary.GeneratorInfo, error) {
			return nil, errors.New("registry unavailable")
		},
	}
	var buf bytes.Buffer
	if _, err := NewGenerationAdapter(mock, &buf).ListGenerators(context.Background()); err == nil {
		t.Error("expected an error")
	}
}
