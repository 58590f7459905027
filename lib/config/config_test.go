package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvConverter, "/opt/ImageToPAA.exe")
	t.Setenv(EnvSize, "2048")
	t.Setenv(EnvSettings, "")
	t.Setenv(EnvVariants, "co, ,smdi")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		ConverterPath: "/opt/ImageToPAA.exe",
		Size:          2048,
		Variants:      []string{"co", "smdi"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoadBadSize(t *testing.T) {
	t.Setenv(EnvSize, "big")
	if _, err := Load(); err == nil {
		t.Error("Load succeeded with invalid size")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvSize+"=512\n"+EnvConverter+"=/from/file.exe\n"), 0666); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConverter, "/from/env.exe")
	t.Setenv(EnvSize, "")
	os.Unsetenv(EnvSize)
	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 512 {
		t.Errorf("Size = %d, want 512", cfg.Size)
	}
	if cfg.ConverterPath != "/from/env.exe" {
		t.Errorf("ConverterPath = %q, environment should win", cfg.ConverterPath)
	}
}
