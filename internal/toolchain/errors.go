package toolchain

import (
	"errors"
	"fmt"
	"syscall"
)

// Process exit codes used by the CLI. Stage failures pass the tool's own
// code through; these cover the cases where no tool code exists.
const (
	ExitOK            = 0
	ExitInvalidInput  = 1
	ExitNotExecutable = 126 // Tool exists but cannot be executed.
	ExitNotFound      = 127 // Tool not found.
	ExitInterrupted   = 130 // 128 + SIGINT; see SignalExit for other signals.
	ExitSignalBase    = 128
)

// SignalExit is the shell's status for a process ended by sig: 128 + N.
func SignalExit(sig syscall.Signal) int { return ExitSignalBase + int(sig) }

// Sentinel errors. Wrap with fmt.Errorf("%w: ...") to add context.
var (
	// ErrInvalidInput is returned before Stage 1 runs, e.g. when the
	// source file is missing or the output name cannot be resolved.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInterrupted is returned when the context is cancelled while a
	// stage is running or before it starts.
	ErrInterrupted = errors.New("interrupted")
)

// StageError reports a stage whose tool exited non-zero. Stage
// StageTranspile is a transpile failure, StageCompile a compile failure.
type StageError struct {
	Stage  Stage
	Result *StageResult
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (exit %d)", e.Stage, e.Result.ExitCode)
}

// IsTranspileFailure reports whether err is a Stage 1 failure.
func IsTranspileFailure(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == StageTranspile
}

// IsCompileFailure reports whether err is a Stage 2 failure.
func IsCompileFailure(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == StageCompile
}

// ExitCode maps an error from the pipeline to a process exit code: nil is 0,
// a stage failure is the tool's own code, an interruption is 130, and
// anything else (invalid input, configuration) is 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var se *StageError
	if errors.As(err, &se) && se.Result != nil && se.Result.ExitCode != 0 {
		return se.Result.ExitCode
	}
	if errors.Is(err, ErrInterrupted) {
		return ExitInterrupted
	}
	return ExitInvalidInput
}
