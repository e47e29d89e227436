// Package pipeline is the build driver: it resolves file names, runs the
// transpile stage, and runs the compile stage only if the first succeeded.
//
// The sequence is strictly linear. Stage 2 consumes the file Stage 1
// writes, so it never starts before Stage 1 has exited with status 0. The
// first failure ends the run with the failing stage's result; nothing is
// retried, cached, or cleaned up. In particular the intermediate file stays
// on disk after a compile failure.
package pipeline
