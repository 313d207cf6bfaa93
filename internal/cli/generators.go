package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gelo7212/express-ts-backend-generator/internal/version"
	"github.com/gelo7212/express-ts-backend-generator/internal/wire"
)

var generatorsCmd = &cobra.Command{
	Use:   "generators",
	Short: "List the registered generators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.GenerationAdapter().ListGenerators(cmd.Context())
		return err
	},
}

// GeneratorsCmd returns the generators command.
func GeneratorsCmd() *cobra.Command {
	return generatorsCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Printing the version needs no settings or services.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

// VersionCmd returns the version command.
func VersionCmd() *cobra.Command {
	return versionCmd
}
