package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
)

// Stage identifies one tool invocation within the pipeline.
type Stage int

const (
	StageTranspile Stage = iota + 1
	StageCompile
)

func (s Stage) String() string {
	switch s {
	case StageTranspile:
		return "transpile"
	case StageCompile:
		return "compile"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageResult holds the outcome of a single tool invocation. It is consumed
// by the driver to decide whether to continue and is not kept afterwards.
type StageResult struct {
	Stage    Stage
	Argv     []string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner runs one stage to completion. Implementations block until the
// child has exited; a nil error with a non-zero ExitCode means the tool ran
// and failed.
type Runner interface {
	Run(ctx context.Context, stage Stage, argv []string) (*StageResult, error)
}

// ExecRunner runs stages as real child processes. Output is tee'd to Stdout
// and Stderr (either may be nil) while also being captured.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts argv and waits for it. When ctx is cancelled the child's whole
// process group is killed and Run returns ErrInterrupted after the child has
// been reaped. A tool that cannot be started yields exit code 127 (not found)
// or 126 (not executable), with the reason written to the stage's stderr.
func (r *ExecRunner) Run(ctx context.Context, stage Stage, argv []string) (*StageResult, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s: empty command", stage)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", stage, ErrInterrupted)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	configureProcess(cmd)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(&stdoutBuf, r.Stdout)
	cmd.Stderr = tee(&stderrBuf, r.Stderr)

	err := cmd.Run()

	res := &StageResult{Stage: stage, Argv: argv}
	if ctx.Err() != nil {
		res.Stdout, res.Stderr = stdoutBuf.Bytes(), stderrBuf.Bytes()
		return res, fmt.Errorf("%s: %w", stage, ErrInterrupted)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitCode(exitErr)
		} else {
			res.ExitCode = startFailureCode(err)
			msg := fmt.Sprintf("%s: %v\n", argv[0], err)
			_, _ = cmd.Stderr.Write([]byte(msg))
		}
	}
	res.Stdout, res.Stderr = stdoutBuf.Bytes(), stderrBuf.Bytes()
	return res, nil
}

// tee captures into buf and, when w is non-nil, passes output through live.
func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// exitCode returns the tool's exit status, or 128+N when it was killed by
// signal N (the shell convention).
func exitCode(exitErr *exec.ExitError) int {
	if code, ok := signalExitCode(exitErr); ok {
		return code
	}
	if code := exitErr.ExitCode(); code > 0 {
		return code
	}
	return 1
}

func startFailureCode(err error) int {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	return ExitNotExecutable
}
