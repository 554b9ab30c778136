package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/stats"
)

var (
	slotAddTarget string

	slotEditLabel   string
	slotEditTarget  string
	slotEditStudied string
	slotEditNote    string
)

func newDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Show the slots of a day",
		Args:  cobra.NoArgs,
		RunE:  runDayCmd,
	}
}

func runDayCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	out := cmd.OutOrStdout()
	if err := stats.WriteDay(out, env.session.Date(), env.session.Working()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !env.session.Saved() {
		if _, err := fmt.Fprintln(out, "(not saved yet; showing the template)"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <slot-id> <HH:MM[:SS]>",
		Short: "Set the studied time of a slot and save the day",
		Args:  cobra.ExactArgs(2),
		RunE:  runLogCmd,
	}
}

func runLogCmd(cmd *cobra.Command, args []string) error {
	id, err := parseSlotID(args[0])
	if err != nil {
		return err
	}
	seconds, err := duration.ParseClock(args[1])
	if err != nil {
		return err
	}
	return mutateDay(cmd, func(env *appEnv) (model.Slot, string, error) {
		slot, err := env.session.LogStudied(id, seconds)
		return slot, "Logged " + duration.Format(seconds) + " to", err
	})
}

func newNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <slot-id> <text>...",
		Short: "Set the note of a slot and save the day",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runNoteCmd,
	}
}

func runNoteCmd(cmd *cobra.Command, args []string) error {
	id, err := parseSlotID(args[0])
	if err != nil {
		return err
	}
	note := strings.Join(args[1:], " ")
	return mutateDay(cmd, func(env *appEnv) (model.Slot, string, error) {
		slot, err := env.session.SetNote(id, note)
		return slot, "Updated note of", err
	})
}

func newSlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Add, edit, or remove slots of a day",
	}

	addCmd := &cobra.Command{
		Use:   "add <label> | add <start> <end>",
		Short: "Add a slot and save the day",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSlotAddCmd,
	}
	addCmd.Flags().StringVar(&slotAddTarget, "target", duration.Format(model.DefaultTargetSeconds), "target time (HH:MM[:SS])")

	editCmd := &cobra.Command{
		Use:   "edit <slot-id>",
		Short: "Edit a slot and save the day",
		Args:  cobra.ExactArgs(1),
		RunE:  runSlotEditCmd,
	}
	editCmd.Flags().StringVar(&slotEditLabel, "label", "", "new label")
	editCmd.Flags().StringVar(&slotEditTarget, "target", "", "new target time (HH:MM[:SS])")
	editCmd.Flags().StringVar(&slotEditStudied, "studied", "", "new studied time (HH:MM[:SS])")
	editCmd.Flags().StringVar(&slotEditNote, "note", "", "new note")

	rmCmd := &cobra.Command{
		Use:     "rm <slot-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a slot and save the day",
		Args:    cobra.ExactArgs(1),
		RunE:    runSlotRmCmd,
	}

	cmd.AddCommand(addCmd, editCmd, rmCmd)
	return cmd
}

// slotLabel joins a start and end time into the usual "start-end" label.
func slotLabel(args []string) string {
	if len(args) == 2 {
		return strings.TrimSpace(args[0]) + "-" + strings.TrimSpace(args[1])
	}
	return args[0]
}

func runSlotAddCmd(cmd *cobra.Command, args []string) error {
	target, err := duration.ParseClock(slotAddTarget)
	if err != nil {
		return err
	}
	label := slotLabel(args)
	return mutateDay(cmd, func(env *appEnv) (model.Slot, string, error) {
		slot, err := env.session.AddSlot(label, target)
		return slot, "Added", err
	})
}

func runSlotEditCmd(cmd *cobra.Command, args []string) error {
	id, err := parseSlotID(args[0])
	if err != nil {
		return err
	}
	var patch model.SlotPatch
	flags := cmd.Flags()
	if flags.Changed("label") {
		patch.Label = &slotEditLabel
	}
	if flags.Changed("note") {
		patch.Note = &slotEditNote
	}
	if flags.Changed("target") {
		v, err := duration.ParseClock(slotEditTarget)
		if err != nil {
			return err
		}
		patch.TargetSeconds = &v
	}
	if flags.Changed("studied") {
		v, err := duration.ParseClock(slotEditStudied)
		if err != nil {
			return err
		}
		patch.StudiedSeconds = &v
	}
	if patch == (model.SlotPatch{}) {
		return fmt.Errorf("nothing to change (use --label, --target, --studied, or --note)")
	}
	return mutateDay(cmd, func(env *appEnv) (model.Slot, string, error) {
		slot, err := env.session.EditSlot(id, patch)
		return slot, "Updated", err
	})
}

func runSlotRmCmd(cmd *cobra.Command, args []string) error {
	id, err := parseSlotID(args[0])
	if err != nil {
		return err
	}
	return mutateDay(cmd, func(env *appEnv) (model.Slot, string, error) {
		slot, ok := env.session.Working().Slot(id)
		if !ok {
			slot = model.Slot{ID: id}
		}
		return slot, "Removed", env.session.RemoveSlot(id)
	})
}

// mutateDay opens the session, applies change, and saves the day. Nothing is
// written when change fails.
func mutateDay(cmd *cobra.Command, change func(env *appEnv) (model.Slot, string, error)) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	slot, verb, err := change(env)
	if err != nil {
		return err
	}
	if err := env.session.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save %s: %w", env.session.DateKey(), err)
	}
	if err := printSlot(cmd, verb, slot); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
