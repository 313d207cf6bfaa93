// Package cli defines the express-ts-gen commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
	"github.com/gelo7212/express-ts-backend-generator/internal/wire"
)

var globalFlags struct {
	project  string
	settings string
	verbose  bool
	dryRun   bool
}

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&globalFlags.project, "project", "C", "", "project root (default is the current directory)")
	pf.StringVar(&globalFlags.settings, "settings", "", "settings file (default is .express-ts-gen.yaml in the project or user config directory)")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&globalFlags.dryRun, "dry-run", false, "show what would be generated without writing anything")
}

// Configure applies the global flags. It is the root command's PersistentPreRunE.
func Configure(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	wire.Configure(wire.Options{
		ProjectDir:   dir,
		SettingsFile: globalFlags.settings,
		Verbose:      globalFlags.verbose,
	})
	return nil
}

func projectDir() (string, error) {
	if globalFlags.project == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	dir, err := filepath.Abs(globalFlags.project)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	return dir, nil
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false, "overwrite existing files")
	cmd.Flags().String("config", "", "JSON, YAML or TOML file merged into the template data")
}

// runGenerator fills the shared request fields from flags and settings and runs it
// through the generation adapter.
func runGenerator(cmd *cobra.Command, req primary.GenerateRequest) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}
	if req.ProjectPath == "" {
		req.ProjectPath = dir
	}
	req.Command = cmd.Name()
	req.DryRun = globalFlags.dryRun

	settings := wire.Settings()
	force, _ := cmd.Flags().GetBool("force")
	req.Force = force || settings.Generation.Force
	skipTests, _ := cmd.Flags().GetBool("skip-tests")
	req.SkipTests = skipTests || settings.Generation.SkipTests

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		req.ConfigPath = abs
	}

	_, err = wire.GenerationAdapter().Generate(cmd.Context(), req)
	return err
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
