// Package fsprobe implements the FsProbe external collaborator from
// spec.md §6 ("fsProbe.stat(path) -> {File, Directory, Missing}"), plus
// file-read and directory-read helpers. It is grounded on
// the teacher's fs.FS interface (internal/fs/fs.go, fs_real.go) -- "most of
// esbuild's internals use this file system abstraction instead of using
// native file system APIs" so tests can swap in a fake -- delegated here to
// github.com/spf13/afero instead of a hand-rolled mock, per DESIGN.md.
package fsprobe

import (
	"os"

	"github.com/spf13/afero"
)

// Kind is the three-way result spec.md §4.9/§6 requires.
type Kind uint8

const (
	Missing Kind = iota
	File
	Directory
)

type Prober struct {
	FS afero.Fs
}

func New(fs afero.Fs) *Prober {
	return &Prober{FS: fs}
}

func NewOS() *Prober {
	return New(afero.NewOsFs())
}

// Stat implements FsProbe.stat (spec.md §4.9 step 2).
func (p *Prober) Stat(path string) (Kind, error) {
	info, err := p.FS.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Missing, nil
		}
		return Missing, err
	}
	if info.IsDir() {
		return Directory, nil
	}
	return File, nil
}

// ReadFile reads a file's contents; it is the file reader handed to
// internal/pkgjson's Reader. (C7 and C8 probe existence with Stat.)
func (p *Prober) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(p.FS, path)
}

// Exists reports whether path names a file or directory. It satisfies
// internal/cjssuggest.Prober without this package importing that package.
func (p *Prober) Exists(path string) bool {
	kind, err := p.Stat(path)
	return err == nil && kind != Missing
}

// ReadDir lists entry names in a directory. Nothing in the resolver calls it:
// C7's node_modules walk uses Stat and internal/cjssuggest uses Exists.
// Returns (nil, nil) if the
// directory does not exist, matching the teacher's "missing directory is
// not an error, it just means keep walking up" posture in loadNodeModules.
func (p *Prober) ReadDir(path string) ([]string, error) {
	entries, err := afero.ReadDir(p.FS, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}
