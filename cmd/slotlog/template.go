package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/slotlog/internal/duration"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Show or change the slot template new days start from",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the template",
		Args:  cobra.NoArgs,
		RunE:  runTemplateShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Use the slots of --date as the template",
		Args:  cobra.NoArgs,
		RunE:  runTemplateSaveCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Replace the slots of --date with the template and save",
		Args:  cobra.NoArgs,
		RunE:  runTemplateResetCmd,
	})
	return cmd
}

func runTemplateShowCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	out := cmd.OutOrStdout()
	for _, s := range env.session.Template().Slots() {
		if _, err := fmt.Fprintf(out, "%-14s %-20s %s\n", strconv.FormatInt(s.ID, 10), s.Label, duration.Format(s.TargetSeconds)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runTemplateSaveCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.session.SaveAsTemplate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Template saved from %s (%d slots)\n", env.session.DateKey(), env.session.Template().Len())
	return err
}

func runTemplateResetCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer env.close()

	env.session.ResetToTemplate()
	if err := env.session.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save %s: %w", env.session.DateKey(), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reset %s from the template\n", env.session.DateKey())
	return err
}
