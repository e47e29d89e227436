package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/lan22build/internal/check"
	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/display"
	"github.com/backmassage/lan22build/internal/toolchain"
)

func (a *app) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the transpiler and native compiler are available",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			display.PrintBanner(a.stdout)
			if check.RunCheck(&a.cfg, a.log) {
				return nil
			}
			// Name the first blocker and how to fix it.
			if err := check.CheckDeps(&a.cfg); err != nil {
				a.log.Error("%v: %s", err, check.Hint(err))
			}
			return &exitError{code: toolchain.ExitInvalidInput}
		},
	}
	config.BindToolFlags(cmd.Flags(), &a.cfg)
	return cmd
}
