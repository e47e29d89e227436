// Package toolchain builds and runs the two external tools of a build: the
// transpiler (Stage 1) and the native compiler (Stage 2).
//
// Each stage runs as a scoped child process in its own process group. Its
// stdout and stderr are passed through live and also captured into a
// [StageResult]. Cancelling the context kills the whole group before Run
// returns. Tools are never retried and their diagnostics are never
// rewritten; a non-zero exit surfaces as a [*StageError] whose exit code the
// CLI passes through unchanged.
package toolchain
