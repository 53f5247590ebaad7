package edit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"jdoc/internal/ast"
	"jdoc/internal/diag"
	"jdoc/internal/source"
)

func loadedFixture(t *testing.T, mode os.FileMode) (*source.FileSet, *ast.Tree, ast.NodeID) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	content := []byte("class A {\n    void f() {}\n}\n")
	if err := os.WriteFile(path, content, mode); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	tree := ast.NewTree(fs.Get(id))

	pre := tree.Alloc(ast.Node{Kind: ast.KindText, Span: source.Span{File: id, Start: 0, End: 14}})
	method := tree.Alloc(ast.Node{
		Kind: ast.KindMethod,
		Span: source.Span{File: id, Start: 14, End: 25},
		Decl: &ast.DeclInfo{Name: "f"},
	})
	body := tree.Alloc(ast.Node{Kind: ast.KindText, Span: source.Span{File: id, Start: 14, End: 25}})
	post := tree.Alloc(ast.Node{Kind: ast.KindText, Span: source.Span{File: id, Start: 25, End: 28}})
	tree.AddChild(tree.Root, pre)
	tree.AddChild(tree.Root, method)
	tree.AddChild(method, body)
	tree.AddChild(tree.Root, post)
	return fs, tree, method
}

func TestExecuteCommitsAndJournals(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o644)
	bag := diag.NewBag(10)
	journal := &Journal{}
	tx := &Transaction{FS: fs, Reporter: diag.BagReporter{Bag: bag}, Journal: journal}
	ed := &Editor{Reporter: diag.BagReporter{Bag: bag}}

	err := tx.Execute(tree, func() error {
		return ed.Place(tree, method, "/**\n * F.\n */")
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	f := tree.File()
	onDisk, readErr := os.ReadFile(f.Path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}
	if !bytes.Contains(onDisk, []byte("/**")) {
		t.Errorf("comment not committed to disk:\n%s", onDisk)
	}
	if !bytes.Equal(onDisk, f.Content) {
		t.Errorf("FileSet content out of sync with disk")
	}
	if journal.Len() != 1 {
		t.Errorf("journal entries: %d", journal.Len())
	}
}

func TestExecuteReadOnlyRejection(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o444)
	before := tree.Render()
	bag := diag.NewBag(10)
	tx := &Transaction{FS: fs, Reporter: diag.BagReporter{Bag: bag}}
	ed := &Editor{Reporter: diag.BagReporter{Bag: bag}}

	err := tx.Execute(tree, func() error {
		return ed.Place(tree, method, "/**\n * F.\n */")
	})
	if !errors.Is(err, ErrFileReadOnly) {
		t.Fatalf("expected ErrFileReadOnly, got %v", err)
	}

	// Zero tree mutations and exactly one reported failure.
	if !bytes.Equal(tree.Render(), before) {
		t.Errorf("tree mutated despite read-only file")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.EditFileReadOnly {
		t.Errorf("diagnostics: %+v", bag.Items())
	}
}

func TestExecuteStaleFileRejection(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o644)
	f := tree.File()

	// Another writer touches the file after it was loaded.
	newer := f.ModTime.Add(2e9)
	if err := os.Chtimes(f.Path, newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	bag := diag.NewBag(10)
	tx := &Transaction{FS: fs, Reporter: diag.BagReporter{Bag: bag}}
	ed := &Editor{Reporter: diag.BagReporter{Bag: bag}}

	err := tx.Execute(tree, func() error {
		return ed.Place(tree, method, "/**\n * F.\n */")
	})
	if !errors.Is(err, ErrFileStale) {
		t.Fatalf("expected ErrFileStale, got %v", err)
	}
}

func TestExecuteRollsBackOnMutateError(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o644)
	before := tree.Render()
	bag := diag.NewBag(10)
	tx := &Transaction{FS: fs, Reporter: diag.BagReporter{Bag: bag}}
	ed := &Editor{Reporter: diag.BagReporter{Bag: bag}}

	boom := fmt.Errorf("boom")
	err := tx.Execute(tree, func() error {
		// A partial mutation, then a failure inside the unit.
		if placeErr := ed.Place(tree, method, "/**\n * F.\n */"); placeErr != nil {
			return placeErr
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !bytes.Equal(tree.Render(), before) {
		t.Errorf("partial mutation survived rollback")
	}
	onDisk, _ := os.ReadFile(tree.File().Path)
	if bytes.Contains(onDisk, []byte("/**")) {
		t.Errorf("rolled-back change reached disk")
	}
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	fs, tree, _ := loadedFixture(t, 0o644)
	before := tree.Render()
	bag := diag.NewBag(10)
	tx := &Transaction{FS: fs, Reporter: diag.BagReporter{Bag: bag}}

	err := tx.Execute(tree, func() error {
		panic("unexpected")
	})
	if err == nil {
		t.Fatalf("expected an error from the recovered panic")
	}
	if !bytes.Equal(tree.Render(), before) {
		t.Errorf("tree mutated by panicking transaction")
	}
	if !bag.HasErrors() {
		t.Errorf("panic not reported: %+v", bag.Items())
	}
}

func TestJournalUndoRestoresPreImage(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o644)
	original := append([]byte(nil), tree.File().Content...)
	journal := &Journal{}
	tx := &Transaction{FS: fs, Reporter: diag.NopReporter{}, Journal: journal}
	ed := &Editor{Reporter: diag.NopReporter{}}

	if err := tx.Execute(tree, func() error {
		return ed.Place(tree, method, "/**\n * F.\n */")
	}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := journal.Undo(fs); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	onDisk, _ := os.ReadFile(tree.File().Path)
	if !bytes.Equal(onDisk, original) {
		t.Errorf("undo did not restore pre-image:\n%s", onDisk)
	}
}

func TestExecuteDryRunSkipsDisk(t *testing.T) {
	fs, tree, method := loadedFixture(t, 0o644)
	original := append([]byte(nil), tree.File().Content...)
	tx := &Transaction{FS: fs, Reporter: diag.NopReporter{}, DryRun: true}
	ed := &Editor{Reporter: diag.NopReporter{}}

	if err := tx.Execute(tree, func() error {
		return ed.Place(tree, method, "/**\n * F.\n */")
	}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	onDisk, _ := os.ReadFile(tree.File().Path)
	if !bytes.Equal(onDisk, original) {
		t.Errorf("dry run wrote to disk")
	}
}
