package jparse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"jdoc/internal/source"
)

func writeJava(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestListJavaFilesSortedRecursive(t *testing.T) {
	dir := t.TempDir()
	writeJava(t, dir, "b/B.java", "class B {}\n")
	writeJava(t, dir, "a/A.java", "class A {}\n")
	writeJava(t, dir, "a/README.md", "not java\n")

	files, err := ListJavaFiles(dir)
	if err != nil {
		t.Fatalf("ListJavaFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files: %v", files)
	}
	if filepath.Base(files[0]) != "A.java" || filepath.Base(files[1]) != "B.java" {
		t.Errorf("order: %v", files)
	}
}

func TestParseFilesParallelScan(t *testing.T) {
	dir := t.TempDir()
	writeJava(t, dir, "A.java", "class A {\n    void f() {}\n}\n")
	writeJava(t, dir, "B.java", "class B {}\n")
	missing := filepath.Join(dir, "Missing.java")

	fs := source.NewFileSetWithBase(dir)
	files := []string{
		filepath.Join(dir, "A.java"),
		filepath.Join(dir, "B.java"),
		missing,
	}
	results, err := ParseFiles(context.Background(), fs, files, 100, 2)
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results: %d", len(results))
	}
	for _, r := range results[:2] {
		if r.Tree == nil || r.Bag.HasErrors() {
			t.Errorf("%s: tree=%v diags=%+v", r.Path, r.Tree != nil, r.Bag.Items())
		}
	}
	if results[2].Tree != nil || !results[2].Bag.HasErrors() {
		t.Errorf("missing file should carry a load error: %+v", results[2])
	}
}
