package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/arthur-debert/amu/pkg/registry"
	"github.com/arthur-debert/amu/pkg/stow/stowtest"
	"github.com/stretchr/testify/require"
)

// testEnv is an isolated registry, planner and directory tree
type testEnv struct {
	t       *testing.T
	root    string
	store   *registry.Store
	planner *stowtest.Planner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("AMU_CONFIG", "")

	return &testEnv{
		t:       t,
		root:    root,
		store:   registry.NewStore(filepath.Join(root, "config", "amu", "config.yaml")),
		planner: stowtest.New(),
	}
}

func (e *testEnv) deps() Deps {
	return Deps{Store: e.store, Planner: e.planner, FS: filesystem.NewOS()}
}

// dir creates a directory under the root with the given files
func (e *testEnv) dir(name string, files ...string) string {
	e.t.Helper()
	path := filepath.Join(e.root, name)
	require.NoError(e.t, os.MkdirAll(path, 0755))
	for _, f := range files {
		file := filepath.Join(path, f)
		require.NoError(e.t, os.MkdirAll(filepath.Dir(file), 0755))
		require.NoError(e.t, os.WriteFile(file, []byte(f), 0644))
	}
	return path
}

// register writes a binding straight into the registry file
func (e *testEnv) register(target string, sources ...string) {
	e.t.Helper()
	reg, err := e.store.Load()
	require.NoError(e.t, err)
	for _, s := range sources {
		require.NoError(e.t, reg.Add(target, s))
	}
	require.NoError(e.t, e.store.Save(reg))
}

func (e *testEnv) registry() *registry.Registry {
	e.t.Helper()
	reg, err := e.store.Load()
	require.NoError(e.t, err)
	return reg
}

func (e *testEnv) chdir(dir string) {
	e.t.Helper()
	wd, err := os.Getwd()
	require.NoError(e.t, err)
	require.NoError(e.t, os.Chdir(dir))
	e.t.Cleanup(func() { _ = os.Chdir(wd) })
}

func isLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
