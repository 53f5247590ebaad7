package edit

import (
	"fmt"
	"os"

	"jdoc/internal/source"
)

// Entry is the pre-image of one committed transaction.
type Entry struct {
	Path   string
	FileID source.FileID
	Before []byte
}

// Journal is the undo stack for committed transactions. Each entry holds
// the file content from just before the commit; Undo writes the most
// recent pre-image back.
type Journal struct {
	entries []Entry
}

func (j *Journal) Push(e Entry) {
	j.entries = append(j.entries, e)
}

func (j *Journal) Len() int {
	return len(j.entries)
}

// Undo reverts the most recent committed transaction. Virtual files are
// reverted in the FileSet only.
func (j *Journal) Undo(fs *source.FileSet) (Entry, error) {
	if len(j.entries) == 0 {
		return Entry{}, fmt.Errorf("undo: journal is empty")
	}
	e := j.entries[len(j.entries)-1]
	j.entries = j.entries[:len(j.entries)-1]

	if f := fs.Get(e.FileID); f != nil && f.Flags&source.FileVirtual == 0 {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(e.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(e.Path, e.Before, mode); err != nil {
			return Entry{}, fmt.Errorf("undo %s: %w", e.Path, err)
		}
	}
	fs.SetContent(e.FileID, e.Before)
	return e, nil
}
