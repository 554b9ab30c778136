package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/logger"
	"github.com/verte-zerg/slotlog/internal/stats"
	"github.com/verte-zerg/slotlog/internal/store"
)

var importDryRun bool

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON history export into the store",
		Long: "Merge a JSON history export into the store. Keys may be YYYY-MM-DD or DD/MM/YYYY;\n" +
			"imported days replace stored days with the same date.",
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}
	cmd.Flags().BoolVar(&importDryRun, "dry-run", false, "summarise the export without writing")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	days, err := store.DecodeExport(payload)
	if err != nil {
		return err
	}
	summary := stats.AllTimeStats(stats.Days(days))
	out := cmd.OutOrStdout()
	if importDryRun {
		_, err := fmt.Fprintf(out, "%d days, %.1f hours (dry run, nothing written)\n", summary.TotalDays, summary.TotalHours)
		return err
	}

	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.history.Merge(cmd.Context(), days); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	logger.Info("imported history", "file", args[0], "days", len(days))
	_, err = fmt.Fprintf(out, "Imported %d days, %.1f hours (%d days stored)\n", summary.TotalDays, summary.TotalHours, env.history.Len())
	return err
}
