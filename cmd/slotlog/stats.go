package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/report"
	"github.com/verte-zerg/slotlog/internal/stats"
)

var (
	weekAnchor string

	reportFormat string
	reportOut    string
)

func newWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the seven days before a date",
		Args:  cobra.NoArgs,
		RunE:  runWeekCmd,
	}
	cmd.Flags().StringVar(&weekAnchor, "anchor", "", "day after the window (default: --date)")
	return cmd
}

func runWeekCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	anchor := env.session.Date()
	if weekAnchor != "" {
		anchor, err = parseDateFlag(weekAnchor, time.Now())
		if err != nil {
			return err
		}
	}
	barWidth, color := displayOptions(env, cmd)
	summary := stats.SummarizeWeek(stats.WeeklyStats(env.session.History(), anchor))
	if err := stats.WriteWeek(cmd.OutOrStdout(), summary, barWidth, color); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show all-time statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	h := env.session.History()
	if err := stats.WriteAllTime(cmd.OutOrStdout(), stats.AllTimeStats(h), stats.SlotAverages(h)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown or HTML report for --date",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportFormat, "format", report.FormatMarkdown, "output format: md or html")
	cmd.Flags().StringVar(&reportOut, "out", "", "output file (default: stdout)")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	data, err := report.Render(report.Build(env.session.History(), env.session.Date()), reportFormat)
	if err != nil {
		return err
	}
	if reportOut == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(reportOut), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(reportOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logErrf("Wrote %s\n", reportOut)
	return nil
}
