package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jdoc/internal/ast"
)

func writeToml(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "jdoc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	return path
}

func TestLoadFileLayersOverDefaults(t *testing.T) {
	path := writeToml(t, t.TempDir(), `
author = "Jane Doe"

[generate]
mode = "replace"
elements = ["class", "method"]
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Author != "Jane Doe" {
		t.Errorf("author: %q", cfg.Author)
	}
	if cfg.Generate.Mode != ModeReplace {
		t.Errorf("mode: %q", cfg.Generate.Mode)
	}
	// Unset keys keep defaults.
	if cfg.Generate.Visibility != "private" {
		t.Errorf("visibility default: %q", cfg.Generate.Visibility)
	}
	if cfg.WantsKind(ast.KindField) {
		t.Errorf("field should be filtered out")
	}
	if !cfg.WantsKind(ast.KindConstructor) {
		t.Errorf("constructor counts as method")
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	cases := []struct {
		name, toml, wantErr string
	}{
		{"mode", "[generate]\nmode = \"merge\"\n", "unknown mode"},
		{"element", "[generate]\nelements = [\"enum\"]\n", "unknown element"},
		{"visibility", "[generate]\nvisibility = \"internal\"\n", "unknown level"},
		{"author", "author = \"  \"\n", "must not be blank"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeToml(t, t.TempDir(), tc.toml)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadWalksUpToToml(t *testing.T) {
	root := t.TempDir()
	writeToml(t, root, "author = \"Root\"\n")
	nested := filepath.Join(root, "src", "main", "java")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Author != "Root" {
		t.Errorf("author: %q", cfg.Author)
	}
}

func TestLoadWithoutTomlReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generate.Mode != ModeUpdate || cfg.Author != "" {
		t.Errorf("defaults: %+v", cfg)
	}
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteStarter(dir)
	if err != nil {
		t.Fatalf("WriteStarter: %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("starter file does not load: %v", err)
	}
	if _, err := WriteStarter(dir); err == nil {
		t.Errorf("expected overwrite refusal")
	}
}

func TestVisibilityFloor(t *testing.T) {
	cfg := Default()
	cfg.Generate.Visibility = "protected"
	if !cfg.WantsVisibility("public") || !cfg.WantsVisibility("protected") {
		t.Errorf("public/protected should pass")
	}
	if cfg.WantsVisibility("package") || cfg.WantsVisibility("private") {
		t.Errorf("package/private should be filtered")
	}
}
