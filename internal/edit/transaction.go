package edit

import (
	"errors"
	"fmt"
	"os"

	"jdoc/internal/ast"
	"jdoc/internal/diag"
	"jdoc/internal/source"
)

var (
	// ErrFileNotValid means the file is missing or unusable.
	ErrFileNotValid = errors.New("file cannot be used to generate javadocs")
	// ErrFileReadOnly means the on-disk file has no write permission.
	ErrFileReadOnly = errors.New("file is read-only")
	// ErrFileStale means the file changed on disk after it was loaded.
	ErrFileStale = errors.New("file changed on disk since it was loaded")
)

// Transaction wraps tree mutations in an atomic, undoable unit. The
// writability pre-check runs before any mutation; a failed check aborts the
// whole operation with a single reported failure. Any failure inside the
// unit rolls the tree back to its pre-mutation snapshot.
type Transaction struct {
	FS       *source.FileSet
	Reporter diag.Reporter
	Journal  *Journal
	// DryRun commits the tree mutation but skips the disk write.
	DryRun bool
}

// Execute runs mutate against the tree as one unit. On success the tree is
// re-rendered and written back, the FileSet content is refreshed, and the
// pre-image is pushed onto the journal.
func (tx *Transaction) Execute(t *ast.Tree, mutate func() error) (err error) {
	f := t.File()
	if checkErr := tx.checkFileAccess(f); checkErr != nil {
		diag.ReportError(tx.Reporter, accessCode(checkErr), fileSpan(f), checkErr.Error())
		return checkErr
	}

	snap := t.Snapshot()
	defer func() {
		if r := recover(); r != nil {
			t.Restore(snap)
			err = fmt.Errorf("write transaction panicked: %v", r)
			diag.ReportError(tx.Reporter, diag.EditTransactionFailed, fileSpan(f), err.Error())
		}
	}()

	if mutateErr := mutate(); mutateErr != nil {
		t.Restore(snap)
		diag.ReportError(tx.Reporter, diag.EditTransactionFailed, fileSpan(f), mutateErr.Error())
		return mutateErr
	}

	rendered := t.Render()
	if tx.DryRun {
		return nil
	}

	before := append([]byte(nil), f.Content...)
	if f.Flags&source.FileVirtual == 0 {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(f.Path); statErr == nil {
			mode = info.Mode()
		}
		if writeErr := os.WriteFile(f.Path, rendered, mode); writeErr != nil {
			t.Restore(snap)
			wrapped := fmt.Errorf("write %s: %w", f.Path, writeErr)
			diag.ReportError(tx.Reporter, diag.EditWriteFailed, fileSpan(f), wrapped.Error())
			return wrapped
		}
	}

	if tx.Journal != nil {
		tx.Journal.Push(Entry{Path: f.Path, FileID: f.ID, Before: before})
	}
	tx.FS.SetContent(f.ID, rendered)
	return nil
}

// checkFileAccess validates the owning file before any mutation. Virtual
// files (tests, stdin) are always writable.
func (tx *Transaction) checkFileAccess(f *source.File) error {
	if f == nil {
		return ErrFileNotValid
	}
	if f.Flags&source.FileVirtual != 0 {
		return nil
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileNotValid, err)
	}
	if info.Mode().Perm()&0o200 == 0 {
		return fmt.Errorf("%w: %s", ErrFileReadOnly, f.Path)
	}
	if !f.ModTime.IsZero() && info.ModTime().After(f.ModTime) {
		return fmt.Errorf("%w: %s", ErrFileStale, f.Path)
	}
	return nil
}

func accessCode(err error) diag.Code {
	switch {
	case errors.Is(err, ErrFileReadOnly):
		return diag.EditFileReadOnly
	case errors.Is(err, ErrFileStale):
		return diag.EditFileStale
	default:
		return diag.EditFileNotValid
	}
}

func fileSpan(f *source.File) source.Span {
	if f == nil {
		return source.Span{}
	}
	return source.Span{File: f.ID, Start: 0, End: 0}
}
