package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"better/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report output directory access and external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)
			checks := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(checks))
			for _, check := range checks {
				rows = append(rows, []string{check.Name, yesNo(check.Passed), check.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Directory", "OK", "Detail"}, rows, nil, colorize))

			statuses := preflight.CheckSystemDeps(cfg)
			rows = rows[:0]
			missing := 0
			for _, status := range statuses {
				detail := status.Description
				if status.Detail != "" {
					detail = strings.TrimSpace(detail + " (" + status.Detail + ")")
				}
				if !status.Available && !status.Optional {
					missing++
				}
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Command", "Available", "Detail"}, rows, nil, colorize))

			if failed := preflight.Failed(checks); len(failed) > 0 || missing > 0 {
				return fmt.Errorf("%d directory checks failed, %d required tools missing", len(failed), missing)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
