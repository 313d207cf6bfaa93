package app

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gelo7212/express-ts-backend-generator/internal/config"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/effects"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
	"github.com/gelo7212/express-ts-backend-generator/internal/templates"
)

// GenerationServiceImpl implements the GenerationService interface.
type GenerationServiceImpl struct {
	files    secondary.FileRepository
	renderer secondary.TemplateRenderer
	executor EffectExecutor
	logger   *log.Logger

	registry map[string]generatorStrategy
	order    []string
}

// NewGenerationService creates a new GenerationService with injected dependencies.
// Every config is registered under its type; project and schema generators get their
// own strategies, everything else renders and patches with the default one.
func NewGenerationService(
	configs []generation.GeneratorConfig,
	files secondary.FileRepository,
	renderer secondary.TemplateRenderer,
	executor EffectExecutor,
	logger *log.Logger,
) *GenerationServiceImpl {
	if logger == nil {
		logger = log.Default()
	}
	s := &GenerationServiceImpl{
		files:    files,
		renderer: renderer,
		executor: executor,
		logger:   logger,
		registry: make(map[string]generatorStrategy, len(configs)),
	}
	for _, cfg := range configs {
		s.register(newStrategy(cfg))
	}
	return s
}

func (s *GenerationServiceImpl) register(g generatorStrategy) {
	typ := g.config().Type
	if _, ok := s.registry[typ]; !ok {
		s.order = append(s.order, typ)
	}
	s.registry[typ] = g
}

// ListGenerators returns the registered generators in registry order.
func (s *GenerationServiceImpl) ListGenerators(ctx context.Context) ([]*primary.GeneratorInfo, error) {
	infos := make([]*primary.GeneratorInfo, 0, len(s.order))
	for _, typ := range s.order {
		cfg := s.registry[typ].config()
		requires := make([]string, len(cfg.Requires))
		for i, r := range cfg.Requires {
			requires[i] = naming.ToKebab(r)
		}
		infos = append(infos, &primary.GeneratorInfo{
			Type:           cfg.Type,
			Name:           cfg.Name,
			Description:    cfg.Description,
			Requires:       requires,
			RequiresDomain: cfg.RequiresDomain,
			Templates:      len(cfg.Templates),
		})
	}
	return infos, nil
}

// Generate runs one generator through validating, rendering, writing and patching.
// Generation failures are reported in the result; the returned error is reserved for
// cancellation.
func (s *GenerationServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerationResult, error) {
	run := &generationRun{
		svc:    s,
		req:    req,
		stage:  generation.StageValidating,
		result: &primary.GenerationResult{RunID: uuid.NewString(), DryRun: req.DryRun},
	}
	s.logger.Debug("generation started", "run", run.result.RunID, "generator", req.Generator, "stage", run.stage)

	strategy, ok := s.registry[req.Generator]
	if !ok {
		run.fail(generation.Errorf(generation.UserInput, "unknown generator: %s", req.Generator))
	} else {
		run.strategy = strategy
		run.execute(ctx)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run.result.Success = len(run.result.Errors) == 0
	if run.result.Success {
		run.advance(generation.StageDone)
		if run.strategy != nil {
			run.result.NextSteps = run.strategy.nextSteps(run.gctx, req)
		}
	}
	s.recordHistory(ctx, run)
	return run.result, nil
}

// generationRun is the mutable state of one Generate call.
type generationRun struct {
	svc      *GenerationServiceImpl
	req      primary.GenerateRequest
	strategy generatorStrategy
	gctx     *generation.Context
	stage    generation.Stage
	result   *primary.GenerationResult
}

func (r *generationRun) advance(to generation.Stage) {
	if !generation.CanTransition(r.stage, to) {
		r.svc.logger.Warn("unexpected stage transition", "from", r.stage, "to", to)
	}
	r.svc.logger.Debug("stage", "run", r.result.RunID, "from", r.stage, "to", to)
	r.stage = to
}

// fail records a fatal error and moves the run into the error stage.
func (r *generationRun) fail(err error) {
	r.record(err)
	if !r.stage.Terminal() {
		r.advance(generation.StageError)
	}
}

// record adds a non-fatal error; the run continues with the next file.
func (r *generationRun) record(err error) {
	r.result.Errors = append(r.result.Errors, err.Error())
	r.result.Failures = append(r.result.Failures, err)
}

func (r *generationRun) warn(msg string) {
	r.svc.logger.Warn(msg)
	r.result.Warnings = append(r.result.Warnings, msg)
}

func (r *generationRun) execute(ctx context.Context) {
	if err := r.validate(ctx); err != nil {
		r.fail(err)
		return
	}
	if ctx.Err() != nil {
		return
	}

	r.advance(generation.StageRendering)
	rendered, err := r.render()
	if err != nil {
		r.fail(err)
		return
	}
	if ctx.Err() != nil {
		return
	}

	r.advance(generation.StageWriting)
	r.write(ctx, rendered)

	if len(r.result.Errors) > 0 {
		r.advance(generation.StageError)
		return
	}
	r.advance(generation.StagePatching)
	r.patch(ctx)
}

func (r *generationRun) validate(ctx context.Context) error {
	cfg := r.strategy.config()

	var overrides map[string]any
	if r.req.ConfigPath != "" {
		data, err := r.svc.files.ReadFile(ctx, r.req.ConfigPath)
		if err != nil {
			return generation.Wrap(generation.UserInput, err, "failed to read config file %s", r.req.ConfigPath)
		}
		overrides, err = config.ParseOverrides(r.req.ConfigPath, data)
		if err != nil {
			return generation.Wrap(generation.UserInput, err, "invalid config file %s", r.req.ConfigPath)
		}
	}

	r.gctx = r.strategy.newContext(r.req, r.options(), overrides)

	guardCtx := generation.GenerateGuardContext{
		GeneratorType:   cfg.Type,
		Command:         r.req.Command,
		Required:        make(map[string]string, len(cfg.Requires)),
		RequiresProject: cfg.RequiresProject,
		RequiresDomain:  cfg.RequiresDomain,
		DomainName:      r.gctx.DomainName,
		Force:           r.force(),
	}
	for _, key := range cfg.Requires {
		label := naming.ToKebab(key)
		guardCtx.RequiredOrder = append(guardCtx.RequiredOrder, label)
		guardCtx.Required[label] = strings.TrimSpace(requiredValue(key, r.req))
	}

	if cfg.RequiresProject {
		initialized, err := r.svc.projectInitialized(ctx, r.gctx.ProjectPath)
		if err != nil {
			return err
		}
		guardCtx.ProjectInitialized = initialized
	}
	if cfg.RequiresDomain && r.gctx.DomainName != "" {
		exists, err := r.svc.files.DirExists(ctx, r.gctx.Abs(r.gctx.DomainDir()))
		if err != nil {
			return fmt.Errorf("failed to check domain directory: %w", err)
		}
		guardCtx.DomainExists = exists
	}
	if err := r.strategy.guardFacts(ctx, r, &guardCtx); err != nil {
		return err
	}

	if result := generation.CanGenerate(guardCtx); !result.Allowed {
		return result.Error()
	}
	return r.strategy.prepare(ctx, r)
}

// force reads --force from the merged template data so a --config file can set it.
func (r *generationRun) force() bool {
	return r.gctx.Bool("force")
}

// options collects the request flags in the form templates and conditions read them.
func (r *generationRun) options() map[string]any {
	opts := map[string]any{
		"force":      r.req.Force,
		"skipTests":  r.req.SkipTests,
		"skipEntity": r.req.SkipEntity,
		"dryRun":     r.req.DryRun,
	}
	for k, v := range r.req.Options {
		opts[k] = v
	}
	return opts
}

// requiredValue maps a registry requirement onto the request field that carries it.
func requiredValue(key string, req primary.GenerateRequest) string {
	switch key {
	case "domainName":
		return req.DomainName
	default:
		return req.Name
	}
}

func (r *generationRun) render() ([]generation.RenderedFile, error) {
	cfg := r.strategy.config()
	defs := generation.Applicable(cfg, r.gctx)
	if err := r.strategy.checkApplicable(r, defs); err != nil {
		return nil, err
	}

	var rendered []generation.RenderedFile
	for _, def := range defs {
		out := generation.ResolveOutputPath(def.OutputPath, r.gctx)

		if def.Type != generation.DirectoryTemplate {
			content, err := r.svc.renderer.Render(def.Path, r.gctx.TemplateData)
			if err != nil {
				r.record(generation.Wrap(generation.TemplateRenderFailure, err, "failed to render %s", def.Name))
				continue
			}
			rendered = append(rendered, generation.RenderedFile{Template: def.Path, RelPath: out, Content: content})
			continue
		}

		names, err := r.svc.renderer.List(def.Path)
		if err != nil {
			r.record(generation.Wrap(generation.TemplateRenderFailure, err, "failed to list %s", def.Name))
			continue
		}
		for _, name := range names {
			src := path.Join(def.Path, name)
			content, err := r.svc.renderer.Render(src, r.gctx.TemplateData)
			if err != nil {
				r.record(generation.Wrap(generation.TemplateRenderFailure, err, "failed to render %s", src))
				continue
			}
			rendered = append(rendered, generation.RenderedFile{
				Template: src,
				RelPath:  path.Join(out, templates.OutputName(name)),
				Content:  content,
			})
		}
	}
	return rendered, nil
}

func (r *generationRun) write(ctx context.Context, rendered []generation.RenderedFile) {
	existing := make(map[string]bool, len(rendered))
	var checked []generation.RenderedFile
	for _, f := range rendered {
		exists, err := r.svc.files.Exists(ctx, r.gctx.Abs(f.RelPath))
		if err != nil {
			r.record(generation.Wrap(generation.WriteFailure, err, "cannot check %s", f.RelPath))
			continue
		}
		existing[f.RelPath] = exists
		checked = append(checked, f)
	}

	plan := generation.GenerateWritePlan(generation.WritePlanInput{
		ProjectPath: r.gctx.ProjectPath,
		Files:       checked,
		Existing:    existing,
		Force:       r.force(),
	})
	r.logEffects(ctx, plan.Logs)
	r.result.SkippedFiles = append(r.result.SkippedFiles, plan.Skipped...)

	for _, w := range plan.Writes {
		if r.req.DryRun {
			r.result.PlannedFiles = append(r.result.PlannedFiles, w.RelPath)
			continue
		}
		if err := r.svc.executor.Execute(ctx, []effects.Effect{w.Effect}); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.record(generation.Wrap(generation.WriteFailure, err, "failed to write %s", w.RelPath))
			continue
		}
		r.result.GeneratedFiles = append(r.result.GeneratedFiles, w.RelPath)
	}
}

func (r *generationRun) patch(ctx context.Context) {
	targets := generation.PatchTargets(r.strategy.config().Type, r.gctx)
	if len(targets) == 0 {
		return
	}

	contents := make(map[string]string)
	for _, t := range targets {
		if _, done := contents[t.Path]; done {
			continue
		}
		abs := r.gctx.Abs(t.Path)
		exists, err := r.svc.files.Exists(ctx, abs)
		if err != nil || !exists {
			continue
		}
		data, err := r.svc.files.ReadFile(ctx, abs)
		if err != nil {
			r.warn(fmt.Sprintf("cannot read %s: %v", t.Path, err))
			continue
		}
		contents[t.Path] = string(data)
	}

	plan := generation.GeneratePatchPlan(generation.PatchPlanInput{
		ProjectPath: r.gctx.ProjectPath,
		Targets:     targets,
		Contents:    contents,
	})
	for _, w := range plan.Warnings {
		r.warn(w)
	}
	for _, rel := range plan.Unchanged {
		r.svc.logger.Info("already registered, skipping", "path", rel)
	}

	for _, w := range plan.Writes {
		if r.req.DryRun {
			r.result.PlannedPatches = append(r.result.PlannedPatches, w.RelPath)
			continue
		}
		if err := r.svc.executor.Execute(ctx, []effects.Effect{w.Effect}); err != nil {
			r.warn(fmt.Sprintf("failed to update %s: %v", w.RelPath, err))
			continue
		}
		r.svc.logger.Debug("patched", "path", w.RelPath, "applied", strings.Join(w.Applied, ", "))
		r.result.PatchedFiles = append(r.result.PatchedFiles, w.RelPath)
	}
}

func (r *generationRun) logEffects(ctx context.Context, logs []effects.LogEffect) {
	effs := make([]effects.Effect, len(logs))
	for i, l := range logs {
		effs[i] = l
	}
	if err := r.svc.executor.Execute(ctx, effs); err != nil {
		r.svc.logger.Debug("failed to emit log effects", "err", err)
	}
}

// merge folds the result of a nested run (e.g. an auto-created domain) into this one.
func (r *generationRun) merge(nested *primary.GenerationResult) {
	r.result.GeneratedFiles = append(r.result.GeneratedFiles, nested.GeneratedFiles...)
	r.result.SkippedFiles = append(r.result.SkippedFiles, nested.SkippedFiles...)
	r.result.PatchedFiles = append(r.result.PatchedFiles, nested.PatchedFiles...)
	r.result.PlannedFiles = append(r.result.PlannedFiles, nested.PlannedFiles...)
	r.result.PlannedPatches = append(r.result.PlannedPatches, nested.PlannedPatches...)
	r.result.Warnings = append(r.result.Warnings, nested.Warnings...)
	r.result.Errors = append(r.result.Errors, nested.Errors...)
	r.result.Failures = append(r.result.Failures, nested.Failures...)
}

// projectInitialized reports whether dir holds a package.json and a src directory.
func (s *GenerationServiceImpl) projectInitialized(ctx context.Context, dir string) (bool, error) {
	hasPackage, err := s.files.Exists(ctx, filepath.Join(dir, "package.json"))
	if err != nil {
		return false, fmt.Errorf("failed to check package.json: %w", err)
	}
	hasSrc, err := s.files.DirExists(ctx, filepath.Join(dir, "src"))
	if err != nil {
		return false, fmt.Errorf("failed to check src directory: %w", err)
	}
	return hasPackage && hasSrc, nil
}

func (s *GenerationServiceImpl) recordHistory(ctx context.Context, run *generationRun) {
	if run.req.DryRun || ctx.Err() != nil {
		return
	}
	name := run.req.Name
	if name == "" {
		name = run.req.DomainName
	}
	record := &secondary.GenerationRunRecord{
		ID:           run.result.RunID,
		Command:      run.req.Command,
		Generator:    run.req.Generator,
		Name:         name,
		ProjectPath:  run.req.ProjectPath,
		Success:      run.result.Success,
		FilesWritten: len(run.result.GeneratedFiles),
		FilesSkipped: len(run.result.SkippedFiles),
		ErrorCount:   len(run.result.Errors),
		Errors:       strings.Join(run.result.Errors, "\n"),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	eff := effects.PersistEffect{Entity: "generation_run", Operation: "create", Data: record}
	if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
		s.logger.Warn("failed to record generation history", "run", record.ID, "err", err)
	}
}

var _ primary.GenerationService = (*GenerationServiceImpl)(nil)
