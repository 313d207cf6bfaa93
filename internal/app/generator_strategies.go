package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/schema"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// generatorStrategy is the per-type behaviour plugged into the generation pipeline.
type generatorStrategy interface {
	config() generation.GeneratorConfig

	// newContext builds the generation context from the request.
	newContext(req primary.GenerateRequest, options, overrides map[string]any) *generation.Context

	// guardFacts adds strategy-specific facts before the guard runs.
	guardFacts(ctx context.Context, run *generationRun, guardCtx *generation.GenerateGuardContext) error

	// prepare runs after the guard allowed generation and may enrich template data.
	prepare(ctx context.Context, run *generationRun) error

	// checkApplicable rejects a request whose conditions selected no usable templates.
	checkApplicable(run *generationRun, defs []generation.TemplateDefinition) error

	nextSteps(gctx *generation.Context, req primary.GenerateRequest) []string
}

func newStrategy(cfg generation.GeneratorConfig) generatorStrategy {
	base := defaultStrategy{cfg: cfg}
	switch cfg.Type {
	case "project":
		return &projectStrategy{defaultStrategy: base}
	case "mongodb-lazy":
		return &schemaStrategy{defaultStrategy: base, kind: "mongodb", command: "generate:mongodb:lazy"}
	case "mysql-lazy":
		return &schemaStrategy{defaultStrategy: base, kind: "mysql", command: "generate:mysql:lazy", requireForce: true}
	default:
		return &base
	}
}

// defaultStrategy renders the generator's templates for a domain, or for a named
// artifact inside a domain when the generator requires a second name.
type defaultStrategy struct {
	cfg generation.GeneratorConfig
}

func (d *defaultStrategy) config() generation.GeneratorConfig {
	return d.cfg
}

func (d *defaultStrategy) newContext(req primary.GenerateRequest, options, overrides map[string]any) *generation.Context {
	var entity string
	if d.requiresArtifactName() {
		entity = req.Name
	}
	return generation.NewContext(req.ProjectPath, req.DomainName, entity, options, overrides)
}

func (d *defaultStrategy) requiresArtifactName() bool {
	return slices.ContainsFunc(d.cfg.Requires, func(key string) bool {
		return key != "domainName" && key != "projectName"
	})
}

func (d *defaultStrategy) guardFacts(context.Context, *generationRun, *generation.GenerateGuardContext) error {
	return nil
}

func (d *defaultStrategy) prepare(context.Context, *generationRun) error {
	return nil
}

func (d *defaultStrategy) checkApplicable(*generationRun, []generation.TemplateDefinition) error {
	return nil
}

func (d *defaultStrategy) nextSteps(gctx *generation.Context, _ primary.GenerateRequest) []string {
	switch d.cfg.Type {
	case "domain":
		n := gctx.DomainNames()
		return []string{
			fmt.Sprintf("Add business rules to src/domain/%s/entities/%s.entity.ts", n.Lowercase, n.KebabCase),
			"Run 'npm run build' to check the new bindings",
			"Run 'npm test'",
		}
	case "presentation-http":
		return []string{fmt.Sprintf("Try the routes under /api/%s", gctx.DomainNames().PluralKebabCase)}
	default:
		return []string{"Run 'npm run build' to check the generated code"}
	}
}

// projectStrategy creates a new project directory from a skeleton template.
type projectStrategy struct {
	defaultStrategy
}

func (p *projectStrategy) newContext(req primary.GenerateRequest, options, overrides map[string]any) *generation.Context {
	if tmpl, _ := options["template"].(string); tmpl == "" {
		options["template"] = "basic"
	}
	gctx := generation.NewContext(req.ProjectPath, "", "", options, overrides)
	if req.Name != "" {
		gctx.SetProjectName(req.Name)
	}
	return gctx
}

func (p *projectStrategy) guardFacts(ctx context.Context, run *generationRun, guardCtx *generation.GenerateGuardContext) error {
	if run.req.Name == "" {
		return nil
	}
	dir := naming.ToKebab(run.req.Name)
	exists, err := run.svc.files.DirExists(ctx, filepath.Join(run.req.ProjectPath, dir))
	if err != nil {
		return fmt.Errorf("failed to check project directory: %w", err)
	}
	guardCtx.CreatesProject = true
	guardCtx.ProjectDir = dir
	guardCtx.ProjectDirExists = exists
	return nil
}

func (p *projectStrategy) checkApplicable(run *generationRun, defs []generation.TemplateDefinition) error {
	if len(defs) == 0 {
		return generation.Errorf(generation.UserInput, "unknown project template: %s", run.gctx.String("template"))
	}
	return nil
}

func (p *projectStrategy) nextSteps(gctx *generation.Context, req primary.GenerateRequest) []string {
	steps := []string{"cd " + naming.ToKebab(req.Name)}
	if !gctx.Bool("skipGit") {
		steps = append(steps, "git init")
	}
	if !gctx.Bool("skipInstall") {
		steps = append(steps, "npm install")
	}
	return append(steps, "npm run dev")
}

// schemaStrategy generates a lazily connected persistence layer for a domain, creating
// the domain first when it does not exist yet. With requireForce set the domain is
// only created under --force.
type schemaStrategy struct {
	defaultStrategy
	kind         string // "mongodb" or "mysql"
	command      string
	requireForce bool
}

func (s *schemaStrategy) prepare(ctx context.Context, run *generationRun) error {
	gctx := run.gctx
	d := gctx.DomainNames()

	fields, err := s.requestedFields(run)
	if err != nil {
		return err
	}

	opts, err := schema.DecodeOptions(gctx.TemplateData, s.kind, d.KebabCase)
	if err != nil {
		return generation.Wrap(generation.UserInput, err, "invalid %s options", s.kind)
	}

	gctx.TemplateData["dbName"] = opts.DBName
	gctx.TemplateData["envVar"] = opts.EnvVar
	gctx.TemplateData["host"] = opts.Host
	gctx.TemplateData["port"] = opts.Port
	gctx.TemplateData["dialect"] = opts.Dialect
	gctx.TemplateData["timestamps"] = opts.Timestamps
	gctx.TemplateData["connectionDomain"] = d.KebabCase
	delete(gctx.TemplateData, "sharedDomain")
	delete(gctx.TemplateData, "createSharedConnection")

	if opts.SharedDomain != "" {
		shared := naming.ToKebab(opts.SharedDomain)
		gctx.TemplateData["sharedDomain"] = shared
		gctx.TemplateData["connectionDomain"] = shared

		conn := fmt.Sprintf("src/infrastructure/database/%s/%s/connection.ts", shared, s.kind)
		exists, err := run.svc.files.Exists(ctx, gctx.Abs(conn))
		if err != nil {
			return fmt.Errorf("failed to check shared connection: %w", err)
		}
		if !exists {
			run.svc.logger.Info("shared connection does not exist, generating it", "domain", shared, "path", conn)
			gctx.TemplateData["createSharedConnection"] = true
		}
	}

	if err := s.ensureDomain(ctx, run); err != nil {
		return err
	}

	if len(fields) == 0 && s.kind == "mysql" {
		fields = s.entityFields(ctx, run)
	}
	if len(fields) == 0 {
		fields = s.defaultFields()
	}
	gctx.TemplateData["fields"] = fields
	return nil
}

// requestedFields returns the fields of a "fields" key in the --config file, or else
// those given with --fields. Both are validated the same way.
func (s *schemaStrategy) requestedFields(run *generationRun) ([]schema.Field, error) {
	if v, ok := run.gctx.TemplateData["fields"]; ok {
		fields, err := schema.DecodeFields(v)
		if err != nil {
			return nil, generation.Wrap(generation.UserInput, err, "invalid fields in %s", run.req.ConfigPath)
		}
		return fields, nil
	}
	fields, err := schema.ParseFields(run.req.Fields)
	if err != nil {
		return nil, generation.Wrap(generation.UserInput, err, "invalid --fields")
	}
	return fields, nil
}

// entityFields reads the attributes of the domain's existing entity. It returns nil when
// there is no entity to read.
func (s *schemaStrategy) entityFields(ctx context.Context, run *generationRun) []schema.Field {
	gctx := run.gctx
	d := gctx.DomainNames()
	rel := fmt.Sprintf("%s/entities/%s.entity.ts", gctx.DomainDir(), d.KebabCase)

	data, err := run.svc.files.ReadFile(ctx, gctx.Abs(rel))
	if err != nil {
		run.svc.logger.Debug("no domain entity to read fields from", "path", rel, "err", err)
		return nil
	}
	fields := schema.FieldsFromEntity(string(data), d.PascalCase)
	if len(fields) > 0 {
		run.svc.logger.Info("using the fields of the domain entity", "path", rel, "fields", len(fields))
	}
	return fields
}

func (s *schemaStrategy) defaultFields() []schema.Field {
	if s.kind == "mysql" {
		return schema.DefaultMySQLFields()
	}
	return schema.DefaultMongoFields()
}

// ensureDomain runs the domain generator first when the domain directory is missing.
func (s *schemaStrategy) ensureDomain(ctx context.Context, run *generationRun) error {
	gctx := run.gctx
	exists, err := run.svc.files.DirExists(ctx, gctx.Abs(gctx.DomainDir()))
	if err != nil {
		return fmt.Errorf("failed to check domain directory: %w", err)
	}
	if exists {
		return nil
	}
	if s.requireForce && !run.force() {
		return generation.Errorf(generation.DependencyNotFound,
			"Domain structure for '%s' does not exist. Please create the domain first using 'generate:domain %s' or use --force.",
			gctx.DomainNames().PascalCase, gctx.DomainName)
	}

	run.svc.logger.Info("domain does not exist, generating it first", "domain", gctx.DomainName)
	nested, err := run.svc.Generate(ctx, primary.GenerateRequest{
		Generator:   "domain",
		Command:     run.req.Command,
		ProjectPath: run.req.ProjectPath,
		DomainName:  run.req.DomainName,
		Force:       run.force(),
		SkipTests:   gctx.Bool("skipTests"),
		DryRun:      run.req.DryRun,
	})
	if err != nil {
		return err
	}
	run.merge(nested)
	if !nested.Success {
		return generation.Errorf(generation.DependencyNotFound, "failed to generate domain '%s'", gctx.DomainName)
	}
	return nil
}

func (s *schemaStrategy) nextSteps(gctx *generation.Context, _ primary.GenerateRequest) []string {
	pkg := "npm install mongoose"
	if s.kind == "mysql" {
		pkg = "npm install sequelize mysql2"
	}
	return []string{
		pkg,
		fmt.Sprintf("Set %s in your .env file", gctx.String("envVar")),
	}
}
