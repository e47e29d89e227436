// Package config holds runtime configuration for the build driver: defaults,
// CLI flag binding, and validation. Paths that the legacy shell scripts took
// from their own location (script_dir) live here as explicit fields instead
// of process-wide state.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// --- Enum types for validated string fields ---

// OutputNamingMode selects how the native executable name is chosen.
type OutputNamingMode string

const (
	// NamingDerived strips the source extension to get the output name
	// unless an explicit name is passed (default).
	NamingDerived OutputNamingMode = "derived"
	// NamingExplicit requires the caller to pass the output name.
	NamingExplicit OutputNamingMode = "explicit"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default tool settings. DefaultCompiler is used when $CXX is unset.
const (
	DefaultSourceExt       = ".22l"
	DefaultIntermediateExt = ".cpp"
	DefaultTargetLanguage  = "cxx"
	DefaultTranspiler      = "22lan.py"
	DefaultInterpreter     = "python3"
	DefaultCompiler        = "g++"
	DefaultStandard        = "-std=c++20"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// mutated by flag parsing, checked by [Config.Validate], and then passed by
// pointer to the packages that need it.
type Config struct {
	// Naming.
	Naming          OutputNamingMode // Default: "derived".
	SourceExt       string           // Default: ".22l". Stripped to derive the output name.
	IntermediateExt string           // Default: ".cpp". Appended to form the Stage 1 output.

	// Stage 1: transpiler.
	TargetLanguage  string   // Default: "cxx". Passed as -l.
	Transpiler      string   // Default: "22lan.py". Bare names resolve against ToolDir.
	Interpreter     string   // Default: "python3". Empty runs Transpiler directly.
	ToolDir         string   // Directory holding the transpiler; set by the CLI to the executable's dir.
	TranspilerDebug int      // Passed as -d when > 0.
	BackendArgs     []string // Each forwarded as --Xbackend <arg>.

	// Stage 2: native compiler.
	Compiler string // Default: $CXX, else "g++".
	Standard string // Default: "-std=c++20". Forwarded verbatim.

	// Behavior.
	DryRun bool // Print both commands and run nothing.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with every default filled in. $CXX, when
// set, replaces the default compiler the same way make(1) treats it.
func DefaultConfig() Config {
	return Config{
		Naming:          NamingDerived,
		SourceExt:       DefaultSourceExt,
		IntermediateExt: DefaultIntermediateExt,
		TargetLanguage:  DefaultTargetLanguage,
		Transpiler:      DefaultTranspiler,
		Interpreter:     DefaultInterpreter,
		Compiler:        env("CXX", DefaultCompiler),
		Standard:        DefaultStandard,
		ColorMode:       ColorAuto,
	}
}

func env(name, deflt string) string {
	if s := strings.TrimSpace(os.Getenv(name)); s != "" {
		return s
	}
	return deflt
}

// Validate checks enum fields and the tool settings both stages depend on.
func (c *Config) Validate() error {
	switch c.Naming {
	case NamingDerived, NamingExplicit:
		// valid
	default:
		return errors.New("invalid naming mode (use 'derived' or 'explicit')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := validateExt("source extension", c.SourceExt); err != nil {
		return err
	}
	if err := validateExt("intermediate extension", c.IntermediateExt); err != nil {
		return err
	}
	if c.SourceExt == c.IntermediateExt {
		return fmt.Errorf("source and intermediate extensions must differ (both %q)", c.SourceExt)
	}

	if strings.TrimSpace(c.TargetLanguage) == "" {
		return errors.New("target language must not be empty")
	}
	if strings.TrimSpace(c.Transpiler) == "" {
		return errors.New("transpiler must not be empty")
	}
	if strings.TrimSpace(c.Compiler) == "" {
		return errors.New("compiler must not be empty")
	}
	if strings.TrimSpace(c.Standard) == "" {
		return errors.New("language standard must not be empty")
	}
	if c.TranspilerDebug < 0 {
		return fmt.Errorf("transpiler debug level must be >= 0 (got %d)", c.TranspilerDebug)
	}
	return nil
}

// validateExt requires a leading dot and at least one more character.
func validateExt(name, ext string) error {
	if len(ext) < 2 || ext[0] != '.' {
		return fmt.Errorf("invalid %s %q (use a leading dot, e.g. .22l)", name, ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("invalid %s %q (must not contain a path separator)", name, ext)
	}
	return nil
}
