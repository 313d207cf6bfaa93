package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/cli"
	"github.com/gelo7212/express-ts-backend-generator/internal/db"
	"github.com/gelo7212/express-ts-backend-generator/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "express-ts-gen",
		Short: "DDD scaffolding for Express + TypeScript + Inversify backends",
		Long: `express-ts-gen creates Express + TypeScript projects laid out by domain-driven
design and generates domains, entities, use cases, repositories, services,
controllers and lazy MongoDB/MySQL persistence inside them.

Generated classes are registered in the project's TYPES map, dependency
container and route registry. Running a command twice changes nothing.`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Configure,
	}
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewCmd())
	rootCmd.AddCommand(cli.GenerateCmds()...)

	// Introspection
	rootCmd.AddCommand(cli.GeneratorsCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt),
	)
	_ = db.Close()
	if err != nil {
		os.Exit(1)
	}
}
