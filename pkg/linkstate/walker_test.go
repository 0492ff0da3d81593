// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test pairing of source entries with target entries

package linkstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkPairsEntries(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("a.txt")
	tr.sourceFile("b.txt")
	tr.sourceFile("c.txt")
	tr.sourceFile("sub/d.txt")
	tr.targetLink("a.txt", "../dotfiles/src/a.txt")
	tr.targetFile("b.txt")
	tr.targetLink("sub/d.txt", "../nowhere/d.txt")

	entries := NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target)

	want := []Entry{
		{RelPath: "a.txt", SourceKind: EntryFile, TargetKind: EntrySymlink, DestExists: true},
		{RelPath: "b.txt", SourceKind: EntryFile, TargetKind: EntryFile},
		{RelPath: "c.txt", SourceKind: EntryFile, TargetKind: EntryAbsent},
		{RelPath: filepath.Join("sub", "d.txt"), SourceKind: EntryFile, TargetKind: EntrySymlink},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}

	f := Summarize(entries)
	assert.Equal(t, 2, f.LinkCount)
	assert.Equal(t, []string{filepath.Join("sub", "d.txt")}, f.BrokenLinks)
	assert.Equal(t, []string{"b.txt"}, f.RealFiles)
}

func TestWalkDoesNotFollowSymlinkedDirectories(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("a.txt")
	// A link back to the source root would loop forever if followed
	require.NoError(t, os.Symlink(tr.source, filepath.Join(tr.source, "loop")))

	entries := NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].RelPath)
	assert.Equal(t, Entry{RelPath: "loop", SourceKind: EntrySymlink, TargetKind: EntryAbsent}, entries[1])
}

func TestWalkFoldedTargetDirectoryIsOneLink(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("a.txt")
	tr.sourceFile("sub/b.txt")
	tr.targetLink("sub", filepath.Join(tr.source, "sub"))

	entries := NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target)

	want := []Entry{
		{RelPath: "a.txt", SourceKind: EntryFile, TargetKind: EntryAbsent},
		{RelPath: "sub", SourceKind: EntryDir, TargetKind: EntrySymlink, DestExists: true},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}

	f := Summarize(entries)
	assert.Empty(t, f.RealFiles)
	assert.Empty(t, f.BrokenLinks)
	assert.Equal(t, 1, f.LinkCount)
}

func TestWalkDanglingTargetDirectoryLinkIsBroken(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("sub/b.txt")
	tr.targetLink("sub", filepath.Join(tr.root, "gone"))

	f := Summarize(NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target))
	assert.Equal(t, []string{"sub"}, f.BrokenLinks)
	assert.Empty(t, f.RealFiles)
}

func TestWalkRealDirectoryInTarget(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("conf")
	require.NoError(t, os.Mkdir(filepath.Join(tr.target, "conf"), 0755))

	f := Summarize(NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target))
	assert.Equal(t, []string{"conf"}, f.RealFiles)
}

func TestWalkSourceSymlinkOverRealFileIsNotRealFile(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("real.txt")
	require.NoError(t, os.Symlink("real.txt", filepath.Join(tr.source, "alias.txt")))
	tr.targetFile("alias.txt")

	f := Summarize(NewWalker(filesystem.NewOS()).Walk(tr.source, tr.target))
	assert.Empty(t, f.RealFiles)
}

func TestWalkSkipsUnreadableDirectories(t *testing.T) {
	tr := newTree(t)
	tr.sourceFile("a.txt")
	tr.sourceFile("secret/b.txt")

	fsys := denyFS(filepath.Join(tr.source, "secret"))
	entries := NewWalker(fsys).Walk(tr.source, tr.target)

	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].RelPath)
}

func TestWalkMissingSource(t *testing.T) {
	entries := NewWalker(filesystem.NewOS()).Walk(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Empty(t, entries)
}

func TestEntryPredicates(t *testing.T) {
	tests := []struct {
		name                 string
		entry                Entry
		broken, real, isLink bool
	}{
		{"absent", Entry{SourceKind: EntryFile, TargetKind: EntryAbsent}, false, false, false},
		{"good link", Entry{SourceKind: EntryFile, TargetKind: EntrySymlink, DestExists: true}, false, false, true},
		{"dangling link", Entry{SourceKind: EntryFile, TargetKind: EntrySymlink}, true, false, true},
		{"real file", Entry{SourceKind: EntryFile, TargetKind: EntryFile}, false, true, false},
		{"real dir", Entry{SourceKind: EntryFile, TargetKind: EntryDir}, false, true, false},
		{"source symlink", Entry{SourceKind: EntrySymlink, TargetKind: EntryFile}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.broken, tt.entry.IsBrokenLink())
			assert.Equal(t, tt.real, tt.entry.IsRealFile())
			assert.Equal(t, tt.isLink, tt.entry.IsLink())
		})
	}
}
