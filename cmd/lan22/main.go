// Command lan22 is the build driver for 22lan programs: it transpiles a
// source file to C++ with the external transpiler, then compiles the result
// with a native C++ compiler.
//
//	lan22 build <source_path> [output_path] [flags] [-- compiler_flags...]
//	lan22 check [flags]
//
// Exit status is 0 on success, the failing tool's own status when a stage
// fails, 1 for invalid input or configuration, and 128 + N when stopped by
// signal N (130 for SIGINT, 143 for SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/logging"
	"github.com/backmassage/lan22build/internal/toolchain"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Cancel on SIGINT/SIGTERM; the running stage's process group is
	// killed and reaped before the build returns.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var caught atomic.Int32
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			if s, ok := sig.(syscall.Signal); ok {
				caught.Store(int32(s))
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	a := &app{cfg: config.DefaultConfig(), stdout: stdout, stderr: stderr}
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	code := exitStatus(root.ExecuteContext(ctx), stderr)
	if code == toolchain.ExitInterrupted {
		if s := caught.Load(); s != 0 {
			code = toolchain.SignalExit(syscall.Signal(s))
		}
	}
	return code
}

func exitStatus(err error, stderr io.Writer) int {
	if err == nil {
		return toolchain.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Bootstrap errors (flags, config, logger) are reported here because the
	// logger may not exist yet.
	fmt.Fprintf(stderr, "lan22: %v\n", err)
	return toolchain.ExitInvalidInput
}

// exitError carries the exit status of a failure that has already been
// reported through the logger.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// app holds the state shared by every subcommand.
type app struct {
	cfg       config.Config
	overrides *config.Overrides
	log       *logging.Logger
	stdout    io.Writer
	stderr    io.Writer
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "lan22",
		Short:             "Build native executables from 22lan sources",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate("lan22 v{{.Version}} (" + commit + ")\n")
	root.CompletionOptions.DisableDefaultCmd = true

	a.overrides = config.BindDisplayFlags(root.PersistentFlags(), &a.cfg)

	root.AddCommand(a.buildCommand())
	root.AddCommand(a.checkCommand())
	return root
}

// setup finishes configuration once flags are parsed: apply negated flags,
// default ToolDir to the executable's directory, validate, open the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.overrides.Apply(&a.cfg)

	if a.cfg.ToolDir == "" {
		if dir, err := executableDir(); err == nil {
			a.cfg.ToolDir = dir
		}
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(&a.cfg, a.stdout, a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}

// executableDir returns the symlink-resolved directory of the running binary,
// where the transpiler is installed alongside it.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
