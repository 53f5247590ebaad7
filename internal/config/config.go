package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"jdoc/internal/ast"
)

// Mode controls what happens when an element already has a doc comment.
type Mode string

const (
	// ModeKeep leaves existing comments untouched.
	ModeKeep Mode = "keep"
	// ModeUpdate merges the synthesized skeleton into the existing comment.
	ModeUpdate Mode = "update"
	// ModeReplace discards the existing comment entirely.
	ModeReplace Mode = "replace"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeKeep, ModeUpdate, ModeReplace:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (keep, update, replace)", s)
}

// Settings is the resolved jdoc configuration.
type Settings struct {
	Author   string       `toml:"author"`
	Generate GenerateConf `toml:"generate"`
}

type GenerateConf struct {
	Mode Mode `toml:"mode"`
	// Elements limits generation to the named kinds: class, method, field.
	Elements []string `toml:"elements"`
	// Visibility is the least visible level still documented:
	// public, protected, package or private.
	Visibility string `toml:"visibility"`
}

func Default() Settings {
	return Settings{
		Generate: GenerateConf{
			Mode:       ModeUpdate,
			Elements:   []string{"class", "method", "field"},
			Visibility: "private",
		},
	}
}

// WantsKind reports whether the element kind passes the Elements filter.
// Constructors count as methods, enum constants as fields, all class-like
// kinds as class.
func (s *Settings) WantsKind(kind ast.NodeKind) bool {
	var group string
	switch {
	case kind.ClassLike():
		group = "class"
	case kind == ast.KindMethod || kind == ast.KindConstructor:
		group = "method"
	case kind == ast.KindField || kind == ast.KindEnumConstant:
		group = "field"
	default:
		return false
	}
	for _, e := range s.Generate.Elements {
		if e == group {
			return true
		}
	}
	return false
}

var visibilityRank = map[string]int{
	"public":    0,
	"protected": 1,
	"package":   2,
	"private":   3,
}

// WantsVisibility reports whether a declaration at the given visibility is
// documented under the configured floor.
func (s *Settings) WantsVisibility(v string) bool {
	floor, ok := visibilityRank[s.Generate.Visibility]
	if !ok {
		floor = visibilityRank["private"]
	}
	rank, ok := visibilityRank[v]
	if !ok {
		return true
	}
	return rank <= floor
}

// FindJdocToml walks from startDir toward the filesystem root looking for
// jdoc.toml.
func FindJdocToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "jdoc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load resolves settings for startDir: the nearest jdoc.toml layered over
// the defaults, or plain defaults when none exists.
func Load(startDir string) (Settings, error) {
	path, ok, err := FindJdocToml(startDir)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

func LoadFile(path string) (Settings, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("generate", "mode") {
		if _, err := ParseMode(string(cfg.Generate.Mode)); err != nil {
			return Settings{}, fmt.Errorf("%s: [generate].mode: %w", path, err)
		}
	}
	if meta.IsDefined("generate", "elements") {
		for _, e := range cfg.Generate.Elements {
			switch e {
			case "class", "method", "field":
			default:
				return Settings{}, fmt.Errorf("%s: [generate].elements: unknown element %q", path, e)
			}
		}
	}
	if meta.IsDefined("generate", "visibility") {
		if _, ok := visibilityRank[cfg.Generate.Visibility]; !ok {
			return Settings{}, fmt.Errorf("%s: [generate].visibility: unknown level %q", path, cfg.Generate.Visibility)
		}
	}
	if meta.IsDefined("author") && strings.TrimSpace(cfg.Author) == "" {
		return Settings{}, fmt.Errorf("%s: author must not be blank when set", path)
	}
	return cfg, nil
}

const starterToml = `# jdoc configuration

# Name placed in @author tags on classes. Leave unset to skip the tag.
# author = "Jane Doe"

[generate]
# keep    - never touch elements that already have a comment
# update  - merge the generated skeleton into existing comments (default)
# replace - discard existing comments
mode = "update"
elements = ["class", "method", "field"]
# least visible level still documented: public, protected, package, private
visibility = "private"
`

// WriteStarter writes a commented starter jdoc.toml into dir. It refuses to
// overwrite an existing file.
func WriteStarter(dir string) (string, error) {
	path := filepath.Join(dir, "jdoc.toml")
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(starterToml), 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
