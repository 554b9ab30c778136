package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/config"
	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	var slots strings.Builder
	for _, s := range model.DefaultTemplate().Slots() {
		fmt.Fprintf(&slots, "# [[template.slots]]\n# label = %q\n# target = %q\n#\n", s.Label, duration.Format(s.TargetSeconds))
	}
	return fmt.Sprintf(`# slotlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# backend = %q          # %q or %q
# path = %q

[log]
# debug = false             # Mirror logs to stderr
# level = "warn"            # debug, info, warn, error

[display]
# color = true              # Colour bar charts
# bar-width = 40            # Fixed bar chart width (0 fits the terminal)

# Slot template used until one is saved with "slotlog template save".
%s`,
		config.BackendSQLite,
		config.BackendSQLite,
		config.BackendJSON,
		config.DefaultDBPath(),
		slots.String(),
	)
}
