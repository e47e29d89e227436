package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/display"
	"github.com/backmassage/lan22build/internal/pipeline"
	"github.com/backmassage/lan22build/internal/toolchain"
)

func (a *app) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <source_path> [output_path] [-- compiler_flags...]",
		Short: "Transpile a 22lan source to C++ and compile it to a native executable",
		Long: `Transpile a 22lan source to C++ and compile it to a native executable.

The output name is derived by stripping the source extension (foo.22l -> foo)
unless output_path is given; with --naming explicit, output_path is required.
Arguments after -- are appended to the compiler command line.`,
		Args: buildArgs,
		RunE: a.runBuild,
	}
	config.BindBuildFlags(cmd.Flags(), &a.cfg)
	return cmd
}

// buildArgs accepts one or two positional arguments before "--" and any
// number after it.
func buildArgs(cmd *cobra.Command, args []string) error {
	positional, _ := splitAtDash(cmd, args)
	if len(positional) < 1 || len(positional) > 2 {
		return fmt.Errorf("need <source_path> and optionally [output_path], got %d positional args", len(positional))
	}
	return nil
}

func splitAtDash(cmd *cobra.Command, args []string) (positional, rest []string) {
	if n := cmd.ArgsLenAtDash(); n >= 0 {
		return args[:n], args[n:]
	}
	return args, nil
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	positional, compilerFlags := splitAtDash(cmd, args)
	req := pipeline.BuildRequest{SourcePath: positional[0], CompilerFlags: compilerFlags}
	if len(positional) == 2 {
		req.OutputName = positional[1]
	}

	d := &pipeline.Driver{
		Config: &a.cfg,
		Log:    a.log,
		Runner: &toolchain.ExecRunner{Stdout: a.stdout, Stderr: a.stderr},
		Out:    a.stdout,
	}
	if _, err := d.Run(cmd.Context(), req); err != nil {
		a.reportFailure(err)
		return &exitError{code: toolchain.ExitCode(err)}
	}
	return nil
}

// reportFailure adds one summary line; the tool's own diagnostics have
// already been passed through unchanged.
func (a *app) reportFailure(err error) {
	var se *toolchain.StageError
	switch {
	case errors.As(err, &se):
		a.log.Error("%s failed (exit %d): %s", se.Stage, se.Result.ExitCode, display.FormatCommand(se.Result.Argv))
	case errors.Is(err, toolchain.ErrInterrupted):
		a.log.Warn("Interrupted")
	default:
		a.log.Error("%v", err)
	}
}
