package linkstate

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/amu/pkg/filesystem"
)

// EntryKind describes what occupies a path
type EntryKind string

const (
	EntryAbsent  EntryKind = "absent"
	EntrySymlink EntryKind = "symlink"
	EntryFile    EntryKind = "file"
	EntryDir     EntryKind = "dir"
	EntryOther   EntryKind = "other"
)

// Entry pairs one terminal source entry with its target counterpart
type Entry struct {
	RelPath    string
	SourceKind EntryKind
	TargetKind EntryKind
	// DestExists is set when the target is a symlink that resolves
	DestExists bool
}

// IsBrokenLink reports a target symlink whose destination is missing
func (e Entry) IsBrokenLink() bool {
	return e.TargetKind == EntrySymlink && !e.DestExists
}

// IsRealFile reports a real file or directory sitting where a link to a
// source file is expected
func (e Entry) IsRealFile() bool {
	return e.SourceKind == EntryFile && (e.TargetKind == EntryFile || e.TargetKind == EntryDir)
}

// IsLink reports a target symlink, dangling or not
func (e Entry) IsLink() bool {
	return e.TargetKind == EntrySymlink
}

// Findings summarizes a walk
type Findings struct {
	BrokenLinks []string
	RealFiles   []string
	LinkCount   int
}

// Walker enumerates a source tree against a target tree
type Walker struct {
	fs filesystem.FS
}

// NewWalker creates a walker reading through fsys
func NewWalker(fsys filesystem.FS) *Walker {
	return &Walker{fs: fsys}
}

// Walk returns every terminal entry under source in lexical order. Only
// real directories are descended into; a symlinked directory on either side
// is a single entry. Directories that cannot be read are skipped.
func (w *Walker) Walk(source, target string) []Entry {
	var entries []Entry
	w.walk(source, target, "", &entries)
	return entries
}

func (w *Walker) walk(source, target, rel string, out *[]Entry) {
	dirEntries, err := w.fs.ReadDir(filepath.Join(source, rel))
	if err != nil {
		return
	}

	for _, d := range dirEntries {
		relPath := filepath.Join(rel, d.Name())

		entry := Entry{
			RelPath:    relPath,
			SourceKind: kindOf(d.Type()),
		}
		entry.TargetKind, entry.DestExists = w.inspect(filepath.Join(target, relPath))

		// A target symlink in place of a source directory is a single
		// entry; its children would be read through the link.
		if d.IsDir() && entry.TargetKind != EntrySymlink {
			w.walk(source, target, relPath, out)
			continue
		}
		*out = append(*out, entry)
	}
}

func (w *Walker) inspect(path string) (EntryKind, bool) {
	info, err := w.fs.Lstat(path)
	if err != nil {
		return EntryAbsent, false
	}

	kind := kindOf(info.Mode().Type())
	if kind != EntrySymlink {
		return kind, false
	}

	_, err = w.fs.Stat(path)
	return EntrySymlink, err == nil
}

func kindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return EntrySymlink
	case mode.IsDir():
		return EntryDir
	case mode.IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}

// Summarize derives the broken link, real file and link count findings
func Summarize(entries []Entry) Findings {
	var f Findings
	for _, e := range entries {
		if e.IsLink() {
			f.LinkCount++
		}
		if e.IsBrokenLink() {
			f.BrokenLinks = append(f.BrokenLinks, e.RelPath)
		}
		if e.IsRealFile() {
			f.RealFiles = append(f.RealFiles, e.RelPath)
		}
	}
	return f
}
