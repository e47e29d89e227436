package pipeline

import (
	"time"

	"github.com/backmassage/lan22build/internal/naming"
)

// BuildRequest is one invocation of the driver.
type BuildRequest struct {
	SourcePath    string
	OutputName    string   // Explicit executable name; "" when absent.
	CompilerFlags []string // Appended to the compile command in order.
}

// Outcome describes a successful run.
type Outcome struct {
	Paths      naming.Paths
	OutputSize int64 // Size of the executable; 0 when it could not be stat'ed.
	Elapsed    time.Duration
	DryRun     bool // True when nothing was run.
}
