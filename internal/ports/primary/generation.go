package primary

import "context"

// GenerationService defines the primary port for code generation.
type GenerationService interface {
	// Generate runs one generator against a project.
	Generate(ctx context.Context, req GenerateRequest) (*GenerationResult, error)

	// ListGenerators returns the registered generators.
	ListGenerators(ctx context.Context) ([]*GeneratorInfo, error)
}

// GenerateRequest contains parameters for a generation run.
type GenerateRequest struct {
	Generator   string // registry type, e.g. "domain"
	Command     string // command line that triggered the run, for history
	ProjectPath string // project root, or the parent directory for project creation
	DomainName  string
	Name        string // project, entity, use case, ... name depending on the generator

	Force      bool
	SkipTests  bool
	SkipEntity bool
	DryRun     bool

	Fields     string         // raw --fields JSON
	ConfigPath string         // --config override file
	Options    map[string]any // remaining generator flags (template, shared, host, ...)
}

// GenerationResult is the outcome of a generation run.
type GenerationResult struct {
	Success        bool
	GeneratedFiles []string // files actually written
	SkippedFiles   []string // files left untouched because they exist
	PatchedFiles   []string // shared files updated
	Warnings       []string
	Errors         []string
	Failures       []error // typed errors backing Errors
	NextSteps      []string
	RunID          string

	// Dry runs fill these instead of GeneratedFiles and PatchedFiles.
	DryRun         bool
	PlannedFiles   []string
	PlannedPatches []string
}

// GeneratorInfo describes a registered generator.
type GeneratorInfo struct {
	Type           string
	Name           string
	Description    string
	Requires       []string
	RequiresDomain bool
	Templates      int
}
