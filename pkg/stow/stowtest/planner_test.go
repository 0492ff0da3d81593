package stowtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/stow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (string, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	source := filepath.Join(root, "src")
	target := filepath.Join(root, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "sub"), 0755))
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "sub", "b.txt"), []byte("b"), 0644))
	return source, target
}

func TestScriptedPlan(t *testing.T) {
	p := New().Script(stow.ModeCreate, "/d/src", "LINK: a => ../d/src/a")
	ctx := context.Background()

	text, err := p.Plan(ctx, stow.ModeCreate, "/d/src", "/t")
	require.NoError(t, err)
	assert.Equal(t, "LINK: a => ../d/src/a", text)

	text, err = p.Plan(ctx, stow.ModeRemove, "/d/src", "/t")
	require.NoError(t, err)
	assert.Empty(t, text)

	assert.Equal(t, []Call{
		{Simulate: true, Mode: stow.ModeCreate, Source: "/d/src", Target: "/t"},
		{Simulate: true, Mode: stow.ModeRemove, Source: "/d/src", Target: "/t"},
	}, p.Calls())
	assert.Empty(t, p.Applied())
}

func TestInjectedErrors(t *testing.T) {
	p := New()
	p.PlanErr = errors.New(errors.ErrLinkTool, "boom")
	p.ApplyErr = errors.New(errors.ErrLinkTool, "bang")

	_, err := p.Plan(context.Background(), stow.ModeCreate, "/d/src", "/t")
	assert.EqualError(t, err, "boom")
	assert.EqualError(t, p.Apply(context.Background(), stow.ModeCreate, "/d/src", "/t"), "bang")
}

func TestLinkAndUnlink(t *testing.T) {
	source, target := fixture(t)
	p := New()
	ctx := context.Background()

	require.NoError(t, stow.ApplyCreate(ctx, p, source, target))

	dest, err := os.Readlink(filepath.Join(target, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "../src/a.txt", dest)

	info, err := os.Lstat(filepath.Join(target, "sub"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, stow.ApplyRefresh(ctx, p, source, target), "relinking own links succeeds")

	require.NoError(t, stow.ApplyRemove(ctx, p, source, target))
	_, err = os.Lstat(filepath.Join(target, "a.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(target, "sub", "b.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.Len(t, p.Applied(), 3)
}

func TestLinkRefusesRealFile(t *testing.T) {
	source, target := fixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("mine"), 0644))

	err := New().Apply(context.Background(), stow.ModeCreate, source, target)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkTool))
}

func TestLinkDisabled(t *testing.T) {
	source, target := fixture(t)
	p := New()
	p.Link = false

	require.NoError(t, p.Apply(context.Background(), stow.ModeCreate, source, target))
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
