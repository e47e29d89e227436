// Package check provides toolchain diagnostics (the check command) and the
// dependency validation behind them: the transpiler's interpreter, the
// transpiler itself, and the native compiler.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/toolchain"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrInterpreterNotFound = errors.New("transpiler interpreter not found on PATH")
	ErrTranspilerNotFound  = errors.New("transpiler not found")
	ErrCompilerNotFound    = errors.New("native compiler not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck reports the availability and version of each tool a build needs.
// Unlike CheckDeps it keeps going after a failure so every problem is shown.
// It returns false if any required tool is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Toolchain Check ===")

	ok := true
	if cfg.Interpreter != "" {
		ok = checkTool(log, "Interpreter", cfg.Interpreter) && ok
	}
	ok = checkTranspiler(cfg, log) && ok
	ok = checkTool(log, "Compiler", cfg.Compiler) && ok
	log.Info("Standard: %s", cfg.Standard)
	return ok
}

// checkTool verifies name resolves to an executable and logs its version line.
func checkTool(log Logger, label, name string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		log.Error("%s not found: %s", label, name)
		return false
	}
	log.Debug("%s resolved to %s", label, path)
	if v := versionLine(path); v != "" {
		log.Success("%s: %s", label, v)
	} else {
		log.Warn("%s found at %s but --version failed", label, path)
	}
	return true
}

// checkTranspiler verifies the transpiler exists. Run through an interpreter
// it only needs to be a readable file; run directly it must be executable.
func checkTranspiler(cfg *config.Config, log Logger) bool {
	path := toolchain.TranspilerPath(cfg)
	if err := transpilerPresent(cfg, path); err != nil {
		log.Error("Transpiler not found: %s", path)
		return false
	}
	log.Success("Transpiler: %s", path)
	return true
}

// CheckDeps is the non-interactive validation: it returns the sentinel error
// for the first required tool that cannot be found.
func CheckDeps(cfg *config.Config) error {
	if cfg.Interpreter != "" {
		if _, err := exec.LookPath(cfg.Interpreter); err != nil {
			return ErrInterpreterNotFound
		}
	}
	path := toolchain.TranspilerPath(cfg)
	if err := transpilerPresent(cfg, path); err != nil {
		return fmt.Errorf("%w: %s", ErrTranspilerNotFound, path)
	}
	if _, err := exec.LookPath(cfg.Compiler); err != nil {
		return ErrCompilerNotFound
	}
	return nil
}

// Hint suggests the flag that fixes a CheckDeps error, or "" if err is not
// one of its sentinels.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrInterpreterNotFound):
		return "install it or pass --interpreter (empty runs the transpiler directly)"
	case errors.Is(err, ErrTranspilerNotFound):
		return "pass --transpiler or --tool-dir"
	case errors.Is(err, ErrCompilerNotFound):
		return "pass --compiler or set CXX"
	}
	return ""
}

// --- internal helpers ---

func transpilerPresent(cfg *config.Config, path string) error {
	if cfg.Interpreter == "" {
		_, err := exec.LookPath(path)
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// versionLine runs "<path> --version" and returns the first non-empty line
// of its combined output, or "" if the command fails.
func versionLine(path string) string {
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
