package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/display"
	"github.com/backmassage/lan22build/internal/logging"
	"github.com/backmassage/lan22build/internal/naming"
	"github.com/backmassage/lan22build/internal/toolchain"
)

// Driver chains the transpiler and the native compiler for one source file.
type Driver struct {
	Config *config.Config
	Log    *logging.Logger
	Runner toolchain.Runner
	Out    io.Writer // Receives the command listing in dry-run mode.
}

// Run performs both stages for req. It returns ErrInvalidInput (wrapped)
// before anything runs when the request cannot be resolved, a
// *toolchain.StageError for the first stage that exits non-zero, and
// ErrInterrupted when ctx is cancelled mid-stage.
func (d *Driver) Run(ctx context.Context, req BuildRequest) (*Outcome, error) {
	paths, err := d.resolve(req)
	if err != nil {
		return nil, err
	}

	transpile := toolchain.TranspileCommand(d.Config, paths)
	compile := toolchain.CompileCommand(d.Config, paths, req.CompilerFlags)

	if d.Config.DryRun {
		fmt.Fprintln(d.Out, display.FormatCommand(transpile))
		fmt.Fprintln(d.Out, display.FormatCommand(compile))
		return &Outcome{Paths: paths, DryRun: true}, nil
	}

	start := time.Now()
	if err := d.runStage(ctx, toolchain.StageTranspile, transpile); err != nil {
		return nil, err
	}
	if err := d.runStage(ctx, toolchain.StageCompile, compile); err != nil {
		d.Log.Debug("Keeping %s for inspection", paths.Intermediate)
		return nil, err
	}

	out := &Outcome{Paths: paths, Elapsed: time.Since(start)}
	if fi, err := os.Stat(paths.Output); err == nil {
		out.OutputSize = fi.Size()
	}
	d.Log.Debug("Built %s (%s) in %s", paths.Output, display.FormatBytes(out.OutputSize), out.Elapsed.Round(time.Millisecond))
	return out, nil
}

// resolve validates the source file and computes the paths of the run.
func (d *Driver) resolve(req BuildRequest) (naming.Paths, error) {
	if req.SourcePath == "" {
		return naming.Paths{}, fmt.Errorf("%w: no source file given", toolchain.ErrInvalidInput)
	}
	fi, err := os.Stat(req.SourcePath)
	if err != nil {
		return naming.Paths{}, fmt.Errorf("%w: source %w", toolchain.ErrInvalidInput, err)
	}
	if !fi.Mode().IsRegular() {
		return naming.Paths{}, fmt.Errorf("%w: source %s is not a regular file", toolchain.ErrInvalidInput, req.SourcePath)
	}
	f, err := os.Open(req.SourcePath)
	if err != nil {
		return naming.Paths{}, fmt.Errorf("%w: source %w", toolchain.ErrInvalidInput, err)
	}
	f.Close()

	paths, err := naming.Resolve(req.SourcePath, req.OutputName, d.Config.Naming, d.Config.SourceExt, d.Config.IntermediateExt)
	if err != nil {
		return naming.Paths{}, fmt.Errorf("%w: %w", toolchain.ErrInvalidInput, err)
	}
	d.Log.Debug("Source:       %s", paths.Source)
	d.Log.Debug("Intermediate: %s", paths.Intermediate)
	d.Log.Debug("Output:       %s (%s naming)", paths.Output, d.Config.Naming)
	return paths, nil
}

// runStage runs one stage and turns a non-zero exit into a StageError.
func (d *Driver) runStage(ctx context.Context, stage toolchain.Stage, argv []string) error {
	d.Log.Debug("%s: %s", stage, display.FormatCommand(argv))
	res, err := d.Runner.Run(ctx, stage, argv)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &toolchain.StageError{Stage: stage, Result: res}
	}
	return nil
}
