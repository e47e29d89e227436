package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/lan22build/internal/config"
)

func newTestLogger(t *testing.T, verbose bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.Verbose = verbose
	var out, errOut bytes.Buffer
	l, err := New(&cfg, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l, &out, &errOut
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "lan22.log")
	var out, errOut bytes.Buffer
	l, err := New(&cfg, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_ErrorGoesToErrorStream(t *testing.T) {
	l, out, errOut := newTestLogger(t, false)
	l.Error("compile failed (exit %d)", 1)
	l.Warn("careful")

	if !strings.Contains(errOut.String(), "[ERROR] compile failed (exit 1)") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if strings.Contains(out.String(), "ERROR") {
		t.Errorf("ERROR leaked to stdout: %q", out.String())
	}
	if !strings.Contains(out.String(), "[WARN] careful") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestLogger_DebugOnlyWhenVerbose(t *testing.T) {
	quiet, out, _ := newTestLogger(t, false)
	quiet.Debug("hidden")
	if out.Len() != 0 {
		t.Errorf("non-verbose Debug wrote %q", out.String())
	}

	loud, out2, _ := newTestLogger(t, true)
	loud.Debug("shown %s", "here")
	if !strings.Contains(out2.String(), "[DEBUG] shown here") {
		t.Errorf("verbose Debug wrote %q", out2.String())
	}
}
