package toolchain

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/naming"
)

// TranspilerPath returns the transpiler location. A bare name ("22lan.py")
// resolves against cfg.ToolDir when one is set; anything containing a path
// separator is used as given.
func TranspilerPath(cfg *config.Config) string {
	t := cfg.Transpiler
	if cfg.ToolDir == "" || filepath.IsAbs(t) || strings.ContainsRune(t, '/') || strings.ContainsRune(t, filepath.Separator) {
		return t
	}
	return filepath.Join(cfg.ToolDir, t)
}

// TranspileCommand builds the Stage 1 argv:
//
//	[interpreter] <transpiler> -s <source> -l <target> -o <intermediate> [-d N] [--Xbackend arg]...
func TranspileCommand(cfg *config.Config, p naming.Paths) []string {
	args := make([]string, 0, 10+2*len(cfg.BackendArgs))
	if cfg.Interpreter != "" {
		args = append(args, cfg.Interpreter)
	}
	args = append(args, TranspilerPath(cfg),
		"-s", p.Source,
		"-l", cfg.TargetLanguage,
		"-o", p.Intermediate,
	)
	if cfg.TranspilerDebug > 0 {
		args = append(args, "-d", strconv.Itoa(cfg.TranspilerDebug))
	}
	for _, a := range cfg.BackendArgs {
		args = append(args, "--Xbackend", a)
	}
	return args
}

// CompileCommand builds the Stage 2 argv:
//
//	<compiler> <standard> <intermediate> -o <output> [compilerFlags...]
//
// The standard token and compilerFlags are forwarded verbatim, in order.
func CompileCommand(cfg *config.Config, p naming.Paths, compilerFlags []string) []string {
	args := make([]string, 0, 5+len(compilerFlags))
	args = append(args, cfg.Compiler, cfg.Standard, p.Intermediate, "-o", p.Output)
	return append(args, compilerFlags...)
}
