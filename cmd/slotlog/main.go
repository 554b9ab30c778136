// Package main provides the CLI entrypoint for slotlog.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/config"
	"github.com/verte-zerg/slotlog/internal/datekey"
	apperrors "github.com/verte-zerg/slotlog/internal/errors"
	"github.com/verte-zerg/slotlog/internal/logger"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/session"
	"github.com/verte-zerg/slotlog/internal/stats"
	"github.com/verte-zerg/slotlog/internal/store"
	"github.com/verte-zerg/slotlog/internal/tui"
)

var (
	rootDate    string
	rootDB      string
	rootBackend string
	rootDebug   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slotlog",
		Short:         "Track study time against daily time slots",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootDate, "date", "", "day to work on (YYYY-MM-DD, today, yesterday)")
	rootCmd.PersistentFlags().StringVar(&rootDB, "db", "", "database file (sqlite) or data directory (json)")
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", config.BackendSQLite, "storage backend: sqlite or json")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "verbose logging mirrored to stderr")

	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newNoteCmd())
	rootCmd.AddCommand(newSlotCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// appEnv is everything a command needs once config and storage are open.
type appEnv struct {
	cfg     config.FileConfig
	backend store.Backend
	history *store.History
	session *session.Session
}

func (e *appEnv) close() {
	if cerr := e.backend.Close(); cerr != nil {
		logErrf("failed to close storage: %v\n", cerr)
	}
	if cerr := logger.Close(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
}

// openEnv loads config, starts logging, opens storage, and selects the
// --date day.
func openEnv(ctx context.Context, cmd *cobra.Command) (*appEnv, error) {
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "backend", &rootBackend, cfg.Storage.Backend)
	applyStringConfig(cmd, "db", &rootDB, cfg.Storage.Path)
	applyBoolConfig(cmd, "debug", &rootDebug, cfg.Log.Debug)

	logCfg := logger.Config{Debug: rootDebug, LogDir: config.DefaultLogDir()}
	if cfg.Log.Level != nil {
		logCfg.Level = *cfg.Log.Level
	}
	if err := logger.Init(logCfg); err != nil {
		logErrf("logging disabled: %v\n", err)
	}

	date, err := parseDateFlag(rootDate, time.Now())
	if err != nil {
		return nil, err
	}
	seed, err := cfg.SeedTemplate()
	if err != nil {
		return nil, fmt.Errorf("invalid template in config: %w", err)
	}

	backend, err := openBackend(rootBackend, rootDB)
	if err != nil {
		return nil, err
	}
	history, err := store.Open(ctx, backend)
	if err != nil {
		_ = backend.Close()
		if apperrors.Is(err, apperrors.ErrCorruptState) {
			logger.Error("history unreadable", "err", err)
			return nil, fmt.Errorf("%w\nmove the stored history aside or restore a backup before continuing", err)
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	sess, err := session.Open(ctx, history, seed)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	sess.Select(date)
	logger.Debug("session opened", "backend", rootBackend, "date", sess.DateKey(), "days", history.Len())
	return &appEnv{cfg: cfg, backend: backend, history: history, session: sess}, nil
}

func openBackend(kind, path string) (store.Backend, error) {
	switch kind {
	case config.BackendSQLite:
		if path == "" {
			path = config.DefaultDBPath()
		}
		backend, err := store.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		return backend, nil
	case config.BackendJSON:
		if path == "" {
			path = config.DefaultDataDir()
		}
		backend, err := store.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("--backend must be %q or %q", config.BackendSQLite, config.BackendJSON)
	}
}

// parseDateFlag resolves a --date value against now's calendar day.
func parseDateFlag(value string, now time.Time) (time.Time, error) {
	today := datekey.Day(now)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return datekey.AddDays(today, -1), nil
	case "tomorrow":
		return datekey.AddDays(today, 1), nil
	}
	date, err := datekey.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date value: %w", err)
	}
	return date, nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	env, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.close()

	opts := tui.Options{Color: true}
	if env.cfg.Display.BarWidth != nil {
		opts.BarWidth = *env.cfg.Display.BarWidth
	}
	if env.cfg.Display.Color != nil {
		opts.Color = *env.cfg.Display.Color
	}
	program := tea.NewProgram(tui.NewModel(ctx, env.session, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if env.session.Dirty() {
		logErrln("unsaved changes were discarded")
	}
	return nil
}

// displayOptions resolves bar width and colour for plain output.
func displayOptions(env *appEnv, cmd *cobra.Command) (int, bool) {
	barWidth := 0
	if env.cfg.Display.BarWidth != nil {
		barWidth = *env.cfg.Display.BarWidth
	}
	force := false
	if c := env.cfg.Display.Color; c != nil {
		if !*c {
			return barWidth, false
		}
		force = true
	}
	return barWidth, stats.UseColor(cmd.OutOrStdout(), force)
}

func parseSlotID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid slot id %q", text)
	}
	return id, nil
}

func printSlot(cmd *cobra.Command, verb string, slot model.Slot) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s slot %d %q\n", verb, slot.ID, slot.Label)
	return err
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
