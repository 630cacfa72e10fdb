package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, configFileName)
	writeFile(t, cfgPath, "[check]\njobs = 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: %v %v", ok, err)
	}
	want, _ := filepath.Abs(cfgPath)
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid", "[check]\njobs = 2\nmax_depth = 8\nentries = [\"Demo.Main\"]\ninstantiate = true\n", ""},
		{"unknown key", "[check]\nworkers = 2\n", "unknown keys: check.workers"},
		{"negative jobs", "[check]\njobs = -1\n", "must not be negative"},
		{"syntax", "[check\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			writeFile(t, path, tt.content)
			cfg, err := loadConfig(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("loadConfig: %v", err)
				}
				if cfg.Check.Jobs != 2 || cfg.Check.MaxDepth != 8 || !cfg.Check.Instantiate || len(cfg.Check.Entries) != 1 {
					t.Fatalf("unexpected config %+v", cfg)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigEntriesDriveInstantiation(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), configFileName)
	writeFile(t, cfgPath, "[check]\ninstantiate = true\nentries = [\"Demo.Nope\"]\n")

	cmd := newRootCmd()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--color", "off", "--config", cfgPath, "check", "--format", "short", "testdata/ok"})
	err := cmd.Execute()
	if !errors.Is(err, errHasErrors) {
		t.Fatalf("expected errHasErrors, got %v", err)
	}
	if !strings.Contains(out.String(), "MON9005") {
		t.Fatalf("expected an unknown entry diagnostic:\n%s", out.String())
	}

	// flags win over the project file
	cmd = newRootCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--color", "off", "--config", cfgPath, "check", "--entry", "Demo.Main", "testdata/ok"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("check: %v\n%s", err, out.String())
	}
}
