package app

import (
	"os"
	"path/filepath"
)

// DirName is the per-project workspace directory.
const DirName = ".strsearch"

// Paths holds all resolved filesystem paths for the .strsearch/ directory.
// All fields are pre-computed strings.
type Paths struct {
	Root string // .strsearch/
	DB   string // .strsearch/results.db

	LogDir   string // .strsearch/log/
	BenchLog string // .strsearch/log/bench.log
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, DirName)
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "results.db"),

		LogDir:   filepath.Join(root, "log"),
		BenchLog: filepath.Join(root, "log", "bench.log"),
	}
}

// EnsureDirs creates all subdirectories under .strsearch/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
