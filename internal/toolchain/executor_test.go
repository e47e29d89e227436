//go:build unix

package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_CapturesAndTees(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "tool", `echo out-line; echo err-line >&2`)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
	res, err := r.Run(context.Background(), StageTranspile, []string{script})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if string(res.Stdout) != "out-line\n" || string(res.Stderr) != "err-line\n" {
		t.Errorf("captured stdout=%q stderr=%q", res.Stdout, res.Stderr)
	}
	if stdout.String() != "out-line\n" || stderr.String() != "err-line\n" {
		t.Errorf("passthrough stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
	if res.Stage != StageTranspile || res.Argv[0] != script {
		t.Errorf("result metadata: %+v", res)
	}
}

func TestExecRunner_ForwardsArguments(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "tool", `for a in "$@"; do echo "[$a]"; done`)

	r := &ExecRunner{}
	res, err := r.Run(context.Background(), StageCompile, []string{script, "-std=c++20", "a b.cpp", "-o", "x"})
	if err != nil {
		t.Fatal(err)
	}
	want := "[-std=c++20]\n[a b.cpp]\n[-o]\n[x]\n"
	if string(res.Stdout) != want {
		t.Errorf("args seen by tool = %q, want %q", res.Stdout, want)
	}
}

func TestExecRunner_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"success", "exit 0", 0},
		{"failure code passed through", "echo bad >&2; exit 3", 3},
		{"killed by signal", "kill -TERM $$", 128 + 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, dir, strings.ReplaceAll(tt.name, " ", "_"), tt.body)
			res, err := (&ExecRunner{}).Run(context.Background(), StageCompile, []string{script})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.ExitCode != tt.want {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.want)
			}
		})
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	var stderr bytes.Buffer
	r := &ExecRunner{Stderr: &stderr}

	for _, argv0 := range []string{"lan22-no-such-tool", filepath.Join(t.TempDir(), "missing")} {
		stderr.Reset()
		res, err := r.Run(context.Background(), StageCompile, []string{argv0})
		if err != nil {
			t.Fatalf("Run(%s): %v", argv0, err)
		}
		if res.ExitCode != ExitNotFound {
			t.Errorf("%s: ExitCode = %d, want %d", argv0, res.ExitCode, ExitNotFound)
		}
		if !strings.Contains(stderr.String(), argv0) || !bytes.Equal(res.Stderr, stderr.Bytes()) {
			t.Errorf("%s: stderr = %q, captured %q", argv0, stderr.String(), res.Stderr)
		}
	}
}

func TestExecRunner_NotExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := (&ExecRunner{}).Run(context.Background(), StageCompile, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != ExitNotExecutable {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitNotExecutable)
	}
}

func TestExecRunner_CancelKillsProcessGroup(t *testing.T) {
	dir := t.TempDir()
	// The background sleep inherits stdout; Run can only return promptly if
	// the whole group is killed and the pipe closes.
	script := writeScript(t, dir, "hang", `sleep 30 & echo started; wait`)

	ctx, cancel := context.WithCancel(context.Background())
	var stdout bytes.Buffer
	started := make(chan struct{})
	w := &notifyWriter{w: &stdout, once: started}

	done := make(chan error, 1)
	start := time.Now()
	go func() {
		_, err := (&ExecRunner{Stdout: w}).Run(ctx, StageTranspile, []string{script})
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(10 * time.Second):
		t.Fatal("tool never started")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrInterrupted) {
			t.Errorf("Run error = %v, want ErrInterrupted", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if time.Since(start) > 20*time.Second {
		t.Errorf("cancellation took %v", time.Since(start))
	}
}

func TestExecRunner_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := (&ExecRunner{}).Run(ctx, StageTranspile, []string{"true"})
	if !errors.Is(err, ErrInterrupted) || res != nil {
		t.Errorf("Run = %v, %v; want nil, ErrInterrupted", res, err)
	}
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	if _, err := (&ExecRunner{}).Run(context.Background(), StageCompile, nil); err == nil {
		t.Error("Run(nil argv) should fail")
	}
}

// --- Helpers ---

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// notifyWriter closes once on the first write.
type notifyWriter struct {
	w      *bytes.Buffer
	once   chan struct{}
	closed bool
}

func (n *notifyWriter) Write(p []byte) (int, error) {
	if !n.closed {
		n.closed = true
		close(n.once)
	}
	return n.w.Write(p)
}
