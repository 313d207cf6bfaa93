package cli

import (
	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
)

var newCmd = &cobra.Command{
	Use:     "new [project-name]",
	Aliases: []string{"create", "n"},
	Short:   "Create a new Express + TypeScript + Inversify project",
	Long: `Create a new project directory from a skeleton template.

The project is created in a kebab-case directory beneath the current directory
(or --project). It ships with the dependency container, TYPES registry and route
registry that the generate commands patch.

Examples:
  express-ts-gen new shop-api
  express-ts-gen new ShopApi --template basic --skip-git`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetString("template")
		skipGit, _ := cmd.Flags().GetBool("skip-git")
		skipInstall, _ := cmd.Flags().GetBool("skip-install")

		return runGenerator(cmd, primary.GenerateRequest{
			Generator: "project",
			Name:      arg(args, 0),
			Options: map[string]any{
				"template":    template,
				"skipGit":     skipGit,
				"skipInstall": skipInstall,
			},
		})
	},
}

func init() {
	newCmd.Flags().StringP("template", "t", "basic", "project template")
	newCmd.Flags().Bool("skip-git", false, "leave git init out of the next steps")
	newCmd.Flags().Bool("skip-install", false, "leave npm install out of the next steps")
	addGenerationFlags(newCmd)
}

// NewCmd returns the new command.
func NewCmd() *cobra.Command {
	return newCmd
}
