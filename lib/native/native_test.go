package native

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestModeFor(t *testing.T) {
	cases := []struct {
		path string
		want Mode
		ok   bool
	}{
		{`C:\Tools\PAAConverter.exe`, Batch, true},
		{"/opt/dayz/paaconverter.EXE", Batch, true},
		{"ImageToPAA.exe", PerFile, true},
		{"/x/IMAGETOPAA.exe", PerFile, true},
		{"ImageToPAA", UnknownMode, false},
		{"convert.exe", UnknownMode, false},
		{"", UnknownMode, false},
	}
	for _, c := range cases {
		path := filepath.FromSlash(strings.ReplaceAll(c.path, `\`, "/"))
		m, err := ModeFor(path)
		if (err == nil) != c.ok {
			t.Errorf("ModeFor(%q): err = %v", c.path, err)
			continue
		}
		if m != c.want {
			t.Errorf("ModeFor(%q) = %v, want %v", c.path, m, c.want)
		}
	}
}

func TestArgs(t *testing.T) {
	if got, want := BatchArgs("out"), []string{"-batch", "out", "-output", "out", "-quiet"}; !reflect.DeepEqual(got, want) {
		t.Errorf("BatchArgs = %q, want %q", got, want)
	}
	png := filepath.Join("out", "rock_co.png")
	want := []string{png, filepath.Join("out", "rock_co.paa")}
	if got := FileArgs(png); !reflect.DeepEqual(got, want) {
		t.Errorf("FileArgs = %q, want %q", got, want)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on Windows")
	}
	path := filepath.Join(t.TempDir(), "ImageToPAA.exe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecRunner(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "args.txt")
	exe := writeScript(t, `echo "$1 $2" > "`+out+`"`+"\n")
	if err := (ExecRunner{}).Run(exe, "a.png", "a.paa"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "a.png a.paa" {
		t.Errorf("args = %q", got)
	}
}

func TestExecRunnerFailure(t *testing.T) {
	exe := writeScript(t, "echo 'bad texture size' >&2\nexit 1\n")
	err := (ExecRunner{}).Run(exe, "a.png", "a.paa")
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *ToolError", err)
	}
	if te.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", te.ExitCode)
	}
	if !strings.Contains(te.Error(), "bad texture size") {
		t.Errorf("error %q does not contain stderr", te.Error())
	}
}

func TestExecRunnerMissing(t *testing.T) {
	err := (ExecRunner{}).Run(filepath.Join(t.TempDir(), "ImageToPAA.exe"))
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *ToolError", err)
	}
}
