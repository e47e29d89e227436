//go:build !unix

package toolchain

import "os/exec"

// configureProcess keeps the default cancellation (kill the direct child);
// process groups are a unix concept.
func configureProcess(cmd *exec.Cmd) {}

func signalExitCode(exitErr *exec.ExitError) (int, bool) { return 0, false }
