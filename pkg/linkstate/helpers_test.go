package linkstate

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

// tree builds a source and an empty target under a canonical temp root
type tree struct {
	t      *testing.T
	root   string
	source string
	target string
}

func newTree(t *testing.T) *tree {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	tr := &tree{
		t:      t,
		root:   root,
		source: filepath.Join(root, "dotfiles", "src"),
		target: filepath.Join(root, "target"),
	}
	require.NoError(t, os.MkdirAll(tr.source, 0755))
	require.NoError(t, os.MkdirAll(tr.target, 0755))
	return tr
}

func (tr *tree) sourceFile(rel string) {
	tr.t.Helper()
	path := filepath.Join(tr.source, rel)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tr.t, os.WriteFile(path, []byte(rel), 0644))
}

func (tr *tree) targetFile(rel string) {
	tr.t.Helper()
	path := filepath.Join(tr.target, rel)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tr.t, os.WriteFile(path, []byte("real"), 0644))
}

func (tr *tree) targetLink(rel, dest string) {
	tr.t.Helper()
	path := filepath.Join(tr.target, rel)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tr.t, os.Symlink(dest, path))
}

// deniedFS fails every call on the listed paths with a permission error
type deniedFS struct {
	filesystem.FS
	denied map[string]bool
}

func denyFS(paths ...string) *deniedFS {
	d := &deniedFS{FS: filesystem.NewOS(), denied: make(map[string]bool)}
	for _, p := range paths {
		d.denied[p] = true
	}
	return d
}

func (d *deniedFS) check(op, name string) error {
	if d.denied[name] {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrPermission}
	}
	return nil
}

func (d *deniedFS) Stat(name string) (fs.FileInfo, error) {
	if err := d.check("stat", name); err != nil {
		return nil, err
	}
	return d.FS.Stat(name)
}

func (d *deniedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := d.check("open", name); err != nil {
		return nil, err
	}
	return d.FS.ReadDir(name)
}
