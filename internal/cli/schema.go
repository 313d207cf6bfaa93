package cli

import (
	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/naming"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

// schemaCommand describes a lazy persistence generator.
type schemaCommand struct {
	name      string
	aliases   []string
	generator string
	short     string
	example   string
	mysql     bool // adds --dialect
}

var schemaCommands = []schemaCommand{
	{
		name:      "generate:mongodb:lazy",
		aliases:   []string{"g:mongodb:lazy", "g:ml", "gen:mongo:lazy"},
		generator: "mongodb-lazy",
		short:     "Generate a mongoose schema, model and repository with a lazy connection",
		example: `  express-ts-gen generate:mongodb:lazy product --fields '[{"name":"title","type":"string","required":true}]'
  express-ts-gen g:ml order --shared user`,
	},
	{
		name:      "generate:mysql:lazy",
		aliases:   []string{"g:mysql:lazy", "g:sl", "gen:mysql:lazy"},
		generator: "mysql-lazy",
		short:     "Generate a sequelize model and repository with a lazy connection",
		example:   `  express-ts-gen generate:mysql:lazy customer --host db.internal --port 3307`,
		mysql:     true,
	},
}

// request maps the entity argument and the changed flags onto a generation request.
// Options are only set when given so defaults derived from the entity name apply.
func (s schemaCommand) request(cmd *cobra.Command, args []string) primary.GenerateRequest {
	fields, _ := cmd.Flags().GetString("fields")
	req := primary.GenerateRequest{
		Generator:  s.generator,
		DomainName: arg(args, 0),
		Fields:     fields,
		Options:    map[string]any{},
	}

	if cmd.Flags().Changed("shared") {
		shared, _ := cmd.Flags().GetString("shared")
		if shared != "" {
			req.Options["sharedDomain"] = naming.ToKebab(shared)
		}
	}
	for flag, key := range map[string]string{"host": "host", "dialect": "dialect", "db-name": "dbName"} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(flag)
		req.Options[key] = v
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		req.Options["port"] = port
	}
	return req
}

func (s schemaCommand) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     s.name + " [entity-name]",
		Aliases: s.aliases,
		Short:   s.short,
		Long: s.short + `.

The domain is generated first when it does not exist yet. Without --fields the
schema gets name, email and isActive fields.`,
		Example: s.example,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerator(cmd, s.request(cmd, args))
		},
	}

	addGenerationFlags(cmd)
	cmd.Flags().Bool("skip-tests", false, "do not generate test files for an auto-created domain")
	cmd.Flags().String("fields", "", "JSON array of field definitions")
	cmd.Flags().String("shared", "", "reuse the connection of another domain")
	cmd.Flags().String("host", "", "database host")
	cmd.Flags().Int("port", 0, "database port")
	cmd.Flags().String("db-name", "", "database name")
	if s.mysql {
		cmd.Flags().String("dialect", "", "sequelize dialect (default mysql)")
	}
	return cmd
}
