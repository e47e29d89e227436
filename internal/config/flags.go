package config

// This file binds CLI flags onto a Config. Flags are grouped into tool,
// naming, transpiler, behavior, and display. Negated display flags
// (--no-color) are applied after parsing so Config defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Overrides holds boolean flags that are applied after parsing because they
// invert or replace a default rather than setting a field directly.
type Overrides struct {
	forceColor bool
	noColor    bool
}

// BindBuildFlags registers the flags of the build command on fs. Values are
// written straight into cfg, so cfg must already hold its defaults.
func BindBuildFlags(fs *pflag.FlagSet, cfg *Config) {
	BindToolFlags(fs, cfg)
	defineNamingFlags(fs, cfg)
	defineTranspilerFlags(fs, cfg)
	fs.StringVar(&cfg.Standard, "standard", cfg.Standard, "Language standard token, forwarded verbatim")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", cfg.DryRun, "Print the transpile and compile commands; run nothing")
}

// BindToolFlags registers only the flags that locate the toolchain. The
// check command uses it so it inspects the same tools build would run.
func BindToolFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Transpiler, "transpiler", cfg.Transpiler, "Transpiler script or executable")
	fs.StringVar(&cfg.Interpreter, "interpreter", cfg.Interpreter, "Interpreter for the transpiler (empty runs it directly)")
	fs.StringVar(&cfg.ToolDir, "tool-dir", cfg.ToolDir, "Directory searched for a bare transpiler name (default: executable dir)")
	fs.StringVar(&cfg.Compiler, "compiler", cfg.Compiler, "Native compiler executable (default: $CXX or g++)")
}

// BindDisplayFlags registers --verbose, --color, --no-color and --log, shared
// by every command. Call [Overrides.Apply] after parsing.
func BindDisplayFlags(fs *pflag.FlagSet, cfg *Config) *Overrides {
	o := &Overrides{}
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
	return o
}

// Apply copies negated and override flag values into cfg.
// --no-color wins over --color when both are given.
func (o *Overrides) Apply(cfg *Config) {
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

func defineNamingFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&namingValue{&cfg.Naming}, "naming", "Output naming: derived | explicit")
	fs.StringVar(&cfg.SourceExt, "ext", cfg.SourceExt, "Source extension stripped to derive the output name")
	fs.StringVar(&cfg.IntermediateExt, "intermediate-ext", cfg.IntermediateExt, "Extension of the transpiled file")
}

func defineTranspilerFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TargetLanguage, "target", cfg.TargetLanguage, "Target language token passed to the transpiler")
	fs.IntVar(&cfg.TranspilerDebug, "transpiler-debug", cfg.TranspilerDebug, "Transpiler debug level (forwarded as -d)")
	fs.StringArrayVar(&cfg.BackendArgs, "Xbackend", cfg.BackendArgs, "Pass <arg> to the transpiler backend (repeatable)")
}

// pflag.Value adapters so enum types can be used with fs.Var.

type namingValue struct{ p *OutputNamingMode }

func (n *namingValue) String() string { return string(*n.p) }
func (n *namingValue) Type() string   { return "mode" }
func (n *namingValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "derived":
		*n.p = NamingDerived
	case "explicit":
		*n.p = NamingExplicit
	default:
		return fmt.Errorf("invalid naming mode %q (use 'derived' or 'explicit')", s)
	}
	return nil
}
