package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// generatorCommand describes one generate:* command.
type generatorCommand struct {
	name      string
	aliases   []string
	generator string
	args      []string // positional argument names; the first is always the domain
	short     string
	example   string

	skipTests  bool // adds --skip-tests
	skipEntity bool // adds --skip-entity
}

var generatorCommands = []generatorCommand{
	{
		name:       "generate:domain",
		aliases:    []string{"g:domain", "g:d", "g-d"},
		generator:  "domain",
		args:       []string{"domain-name"},
		short:      "Generate a complete domain slice and register it",
		example:    "express-ts-gen generate:domain order",
		skipTests:  true,
		skipEntity: true,
	},
	{
		name:      "generate:entity",
		aliases:   []string{"g:entity", "g:e"},
		generator: "entity",
		args:      []string{"domain-name", "entity-name"},
		short:     "Generate an entity inside an existing domain",
		example:   "express-ts-gen generate:entity order LineItem",
		skipTests: true,
	},
	{
		name:      "generate:value-object",
		aliases:   []string{"g:value-object", "g:vo"},
		generator: "value-object",
		args:      []string{"domain-name", "value-object-name"},
		short:     "Generate a value object inside an existing domain",
		example:   "express-ts-gen generate:value-object order Money",
	},
	{
		name:      "generate:use-case",
		aliases:   []string{"g:use-case", "g:uc"},
		generator: "use-case",
		args:      []string{"domain-name", "use-case-name"},
		short:     "Generate a use case and register it in the container",
		example:   "express-ts-gen generate:use-case order ProcessOrder",
	},
	{
		name:      "generate:repository",
		aliases:   []string{"g:repository", "g:r"},
		generator: "repository",
		args:      []string{"domain-name", "repository-name"},
		short:     "Generate a repository interface and in-memory implementation",
		example:   "express-ts-gen generate:repository order OrderArchive",
	},
	{
		name:      "generate:service",
		aliases:   []string{"g:service", "g:s"},
		generator: "service",
		args:      []string{"domain-name", "service-name"},
		short:     "Generate a domain service and register it in the container",
		example:   "express-ts-gen generate:service order Pricing",
	},
	{
		name:      "generate:controller",
		aliases:   []string{"g:controller", "g:c"},
		generator: "controller",
		args:      []string{"domain-name", "controller-name"},
		short:     "Generate a controller and register it in the container",
		example:   "express-ts-gen generate:controller order OrderReport",
	},
	{
		name:      "generate:presentation-http",
		aliases:   []string{"g:presentation-http", "g:p-http"},
		generator: "presentation-http",
		args:      []string{"domain-name"},
		short:     "Generate the HTTP controller, DTOs and routes of an existing domain",
		example:   "express-ts-gen generate:presentation-http order",
	},
}

// request maps positional arguments onto a generation request. Missing arguments
// stay empty so the service reports them.
func (g generatorCommand) request(args []string) primary.GenerateRequest {
	req := primary.GenerateRequest{
		Generator:  g.generator,
		DomainName: arg(args, 0),
	}
	if len(g.args) > 1 {
		req.Name = arg(args, 1)
	}
	return req
}

func (g generatorCommand) command() *cobra.Command {
	usage := make([]string, len(g.args))
	for i, a := range g.args {
		usage[i] = "[" + a + "]"
	}

	cmd := &cobra.Command{
		Use:     g.name + " " + strings.Join(usage, " "),
		Aliases: g.aliases,
		Short:   g.short,
		Example: "  " + g.example,
		Args:    cobra.MaximumNArgs(len(g.args)),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := g.request(args)
			if g.skipEntity {
				req.SkipEntity, _ = cmd.Flags().GetBool("skip-entity")
			}
			return runGenerator(cmd, req)
		},
	}
	addGenerationFlags(cmd)
	if g.skipTests {
		cmd.Flags().Bool("skip-tests", false, "do not generate test files")
	}
	if g.skipEntity {
		cmd.Flags().Bool("skip-entity", false, "do not generate the entity and its test")
	}
	return cmd
}

// GenerateCmds returns every generate:* command.
func GenerateCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(generatorCommands)+len(schemaCommands))
	for _, g := range generatorCommands {
		cmds = append(cmds, g.command())
	}
	for _, s := range schemaCommands {
		cmds = append(cmds, s.command())
	}
	return cmds
}
