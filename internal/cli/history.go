package cli

import (
	"errors"

	"github.com/spf13/cobra"

	cliadapter "github.com/gelo7212/express-ts-backend-generator/internal/adapters/cli"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/primary"
	"github.com/gelo7212/express-ts-backend-generator/internal/wire"
)

var errHistoryDisabled = errors.New("generation history is disabled (set history.enabled in the settings file)")

func historyAdapter() (*cliadapter.HistoryAdapter, error) {
	adapter := wire.HistoryAdapter()
	if adapter == nil {
		return nil, errHistoryDisabled
	}
	return adapter, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded generation runs",
	Long:  "List, inspect and clear the journal of generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListCmd.RunE(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := historyAdapter()
		if err != nil {
			return err
		}
		generator, _ := cmd.Flags().GetString("generator")
		failed, _ := cmd.Flags().GetBool("failed")
		limit, _ := cmd.Flags().GetInt("limit")
		here, _ := cmd.Flags().GetBool("here")

		filters := primary.RunFilters{
			Generator:  generator,
			FailedOnly: failed,
			Limit:      limit,
		}
		if here {
			dir, err := projectDir()
			if err != nil {
				return err
			}
			filters.ProjectPath = dir
		}

		_, err = adapter.List(cmd.Context(), filters)
		return err
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a run with its errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := historyAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Show(cmd.Context(), args[0])
		return err
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := historyAdapter()
		if err != nil {
			return err
		}
		_, err = adapter.Clear(cmd.Context())
		return err
	},
}

func init() {
	for _, cmd := range []*cobra.Command{historyCmd, historyListCmd} {
		cmd.Flags().String("generator", "", "only runs of this generator")
		cmd.Flags().Bool("failed", false, "only failed runs")
		cmd.Flags().Int("limit", 20, "maximum number of runs (0 for all)")
		cmd.Flags().Bool("here", false, "only runs against the current project")
	}

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// HistoryCmd returns the history command.
func HistoryCmd() *cobra.Command {
	return historyCmd
}
