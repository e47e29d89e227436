package naming

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/backmassage/lan22build/internal/config"
)

// Errors returned by [Resolve]. Callers classify both as invalid input.
var (
	ErrNoOutputName     = errors.New("explicit naming mode needs an output name")
	ErrOverwritesSource = errors.New("resolved path would overwrite the source file")
	ErrOutputIsInput    = errors.New("output name equals the intermediate file")
)

// Paths holds every file name one build touches.
type Paths struct {
	Source       string
	Intermediate string // Written by the transpiler, read by the compiler.
	Output       string // Native executable.
}

// Resolve computes the Paths for sourcePath. outputName is the caller's
// explicit executable name, or "" when none was given; in derived mode an
// explicit name still wins over the derived one.
func Resolve(sourcePath, outputName string, mode config.OutputNamingMode, sourceExt, intermediateExt string) (Paths, error) {
	p := Paths{Source: sourcePath}
	base := DeriveBase(sourcePath, sourceExt)

	switch mode {
	case config.NamingExplicit:
		if outputName == "" {
			return Paths{}, ErrNoOutputName
		}
		p.Output = outputName
		p.Intermediate = sourcePath + intermediateExt
	case config.NamingDerived:
		p.Output = base
		if outputName != "" {
			p.Output = outputName
		}
		p.Intermediate = base + intermediateExt
	default:
		return Paths{}, fmt.Errorf("unknown naming mode %q", mode)
	}

	src := filepath.Clean(sourcePath)
	if filepath.Clean(p.Output) == src {
		if mode == config.NamingDerived && outputName == "" {
			return Paths{}, fmt.Errorf("%w: %s has no %s extension to strip; pass an output name",
				ErrOverwritesSource, sourcePath, sourceExt)
		}
		return Paths{}, fmt.Errorf("%w: output %s", ErrOverwritesSource, p.Output)
	}
	if filepath.Clean(p.Intermediate) == src {
		return Paths{}, fmt.Errorf("%w: intermediate %s", ErrOverwritesSource, p.Intermediate)
	}
	if filepath.Clean(p.Output) == filepath.Clean(p.Intermediate) {
		return Paths{}, fmt.Errorf("%w: %s", ErrOutputIsInput, p.Output)
	}
	return p, nil
}
