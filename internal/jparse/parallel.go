package jparse

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jdoc/internal/ast"
	"jdoc/internal/diag"
	"jdoc/internal/source"
)

// FileResult is one file's outcome of the read-only scan phase.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tree   *ast.Tree
	Bag    *diag.Bag
}

// ListJavaFiles returns the sorted list of *.java files under dir.
func ListJavaFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths resolves the CLI path arguments: directories expand to the
// java files beneath them, plain files pass through, no arguments means the
// current directory.
func ExpandPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		sub, err := ListJavaFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}
	return files, nil
}

// ParseFiles loads and parses the given files in parallel. Parsing is the
// only concurrent phase; every write downstream is sequential. A file that
// fails to load still yields a result carrying the error diagnostic, so the
// batch reports per file instead of aborting.
func ParseFiles(ctx context.Context, fileSet *source.FileSet, files []string, maxDiagnostics, jobs int) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			results[i] = FileResult{Path: path, Bag: bag}

			if loadErr, hadError := loadErrors[path]; hadError {
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.ParseFailed,
					source.Span{}, "failed to load file: "+loadErr.Error())
				return nil
			}

			id := fileIDs[path]
			p := NewParser(Options{MaxFileSize: DefaultMaxFileSize, Reporter: diag.BagReporter{Bag: bag}})
			tree, err := p.Parse(gctx, fileSet.Get(id))
			if err != nil {
				// Already in the bag; the result carries it per file.
				return nil
			}
			results[i].FileID = id
			results[i].Tree = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
