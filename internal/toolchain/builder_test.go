package toolchain

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/backmassage/lan22build/internal/config"
	"github.com/backmassage/lan22build/internal/naming"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Compiler = "g++"
	return cfg
}

func TestTranspilerPath(t *testing.T) {
	tests := []struct {
		name       string
		transpiler string
		toolDir    string
		want       string
	}{
		{"bare name without tool dir", "22lan.py", "", "22lan.py"},
		{"bare name joins tool dir", "22lan.py", "/opt/lan22", filepath.Join("/opt/lan22", "22lan.py")},
		{"relative path kept", "./tools/22lan.py", "/opt/lan22", "./tools/22lan.py"},
		{"absolute path kept", "/usr/local/bin/22lan.py", "/opt/lan22", "/usr/local/bin/22lan.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Transpiler = tt.transpiler
			cfg.ToolDir = tt.toolDir
			if got := TranspilerPath(&cfg); got != tt.want {
				t.Errorf("TranspilerPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranspileCommand(t *testing.T) {
	p := naming.Paths{Source: "foo.22l", Intermediate: "foo.cpp", Output: "foo"}

	t.Run("defaults", func(t *testing.T) {
		cfg := testConfig()
		got := TranspileCommand(&cfg, p)
		want := []string{"python3", "22lan.py", "-s", "foo.22l", "-l", "cxx", "-o", "foo.cpp"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %q\nwant %q", got, want)
		}
	})

	t.Run("direct with debug and backend args", func(t *testing.T) {
		cfg := testConfig()
		cfg.Interpreter = ""
		cfg.Transpiler = "/bin/22lan"
		cfg.TranspilerDebug = 1
		cfg.BackendArgs = []string{"inline", "x=1"}
		got := TranspileCommand(&cfg, p)
		want := []string{"/bin/22lan", "-s", "foo.22l", "-l", "cxx", "-o", "foo.cpp",
			"-d", "1", "--Xbackend", "inline", "--Xbackend", "x=1"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %q\nwant %q", got, want)
		}
	})
}

func TestCompileCommand(t *testing.T) {
	p := naming.Paths{Source: "foo.22l", Intermediate: "foo.cpp", Output: "bar"}
	cfg := testConfig()
	cfg.Standard = "-std=c++17"

	got := CompileCommand(&cfg, p, []string{"-O2", "-Wall"})
	want := []string{"g++", "-std=c++17", "foo.cpp", "-o", "bar", "-O2", "-Wall"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q\nwant %q", got, want)
	}

	if got := CompileCommand(&cfg, p, nil); len(got) != 5 {
		t.Errorf("without flags got %q", got)
	}
}
