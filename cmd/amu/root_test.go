package amu

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/stow/stowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs amu commands against an isolated home, registry and planner
type cli struct {
	t       *testing.T
	root    string
	planner *stowtest.Planner
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg-config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "xdg-state"))
	t.Setenv("AMU_CONFIG", filepath.Join(root, "registry.yaml"))
	t.Setenv("AMU_SETTINGS", filepath.Join(root, "settings.toml"))
	t.Setenv("NO_COLOR", "1")

	return &cli{t: t, root: root, planner: stowtest.New()}
}

func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	cmd := newRootCmd(c.planner)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (c *cli) dir(name string, files ...string) string {
	c.t.Helper()
	path := filepath.Join(c.root, name)
	require.NoError(c.t, os.MkdirAll(path, 0755))
	for _, f := range files {
		require.NoError(c.t, os.WriteFile(filepath.Join(path, f), []byte(f), 0644))
	}
	return path
}

func TestRootHelp(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Merge multiple source directories into one target with symlinks")
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "status")
}

func TestNoSubcommandShowsUsage(t *testing.T) {
	c := newCLI(t)

	_, stderr, err := c.run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, stderr, "Usage:")
}

func TestAddRequiresSource(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
	assert.Empty(t, c.planner.Calls())
}

func TestAddListRemove(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt", "b.txt")
	target := c.dir("target")

	out, _, err := c.run("add", source, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Added:")
	assert.FileExists(t, filepath.Join(target, "a.txt"))

	out, _, err = c.run("list", target)
	require.NoError(t, err)
	assert.Contains(t, out, source)

	out, _, err = c.run("list", "-v", target)
	require.NoError(t, err)
	assert.Contains(t, out, "sources:")
	assert.Contains(t, out, "links:")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "b.txt")

	out, _, err = c.run("remove", source, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed:")
	assert.NoFileExists(t, filepath.Join(target, "a.txt"))

	out, _, err = c.run("list", target)
	require.NoError(t, err)
	assert.Contains(t, out, "No targets registered")
}

func TestAddDryRunDoesNotRegister(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	target := c.dir("target")

	out, _, err := c.run("add", "-n", source, target)
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run]")
	assert.Empty(t, c.planner.Applied())
	assert.NoFileExists(t, filepath.Join(c.root, "registry.yaml"))
}

func TestStatus(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt", "b.txt", "c.txt")
	target := c.dir("target")

	_, _, err := c.run("add", source, target)
	require.NoError(t, err)

	out, _, err := c.run("status", target)
	require.NoError(t, err)
	assert.Contains(t, out, "3 links")
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "1 OK")
}

func TestStatusJSON(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	target := c.dir("target")

	_, _, err := c.run("add", source, target)
	require.NoError(t, err)

	out, _, err := c.run("status", "--json", target)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"link_count"`)
	assert.Contains(t, out, `"summary"`)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
}

func TestStatusJSONEmpty(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("status", "--json", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, `"targets": []`)
}

func TestStatusWithIssuesExitsNonZero(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	target := c.dir("target")

	_, _, err := c.run("add", source, target)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(target, "a.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("real"), 0644))

	out, _, err := c.run("status", target)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIssuesFound))
	assert.Contains(t, out, "real files found")

	var stderr bytes.Buffer
	assert.Equal(t, 1, ExitCode(&stderr, err))
	assert.Empty(t, stderr.String())
}

func TestStatusUnregisteredTarget(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	target := c.dir("target")
	other := c.dir("other")

	_, _, err := c.run("add", source, target)
	require.NoError(t, err)

	out, _, err := c.run("status", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Target not registered")
}

func TestClearAll(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	first := c.dir("first")
	second := c.dir("second")

	_, _, err := c.run("add", source, first)
	require.NoError(t, err)
	_, _, err = c.run("add", source, second)
	require.NoError(t, err)

	out, _, err := c.run("clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared:")
	assert.Contains(t, out, "Cleared all registered sources")

	out, _, err = c.run("list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "No targets registered")
}

func TestUpdate(t *testing.T) {
	c := newCLI(t)
	source := c.dir("dotfiles", "a.txt")
	target := c.dir("target")

	_, _, err := c.run("add", source, target)
	require.NoError(t, err)
	c.dir("dotfiles", "new.txt")

	out, _, err := c.run("update", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Updating")
	assert.Contains(t, out, "1 succeeded")
	assert.FileExists(t, filepath.Join(target, "new.txt"))
}

func TestInvalidFormat(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("--format", "xml", "list")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestConfigCommand(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.root, "settings.toml"),
		[]byte("[display]\nconflict_lines = 9\n"), 0644))

	out, _, err := c.run("config")
	require.NoError(t, err)
	assert.Contains(t, out, "binary")
	assert.Contains(t, out, "stow")
	assert.Contains(t, out, "conflict_lines = 9")
}

func TestConfigDefaults(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.root, "settings.toml"),
		[]byte("[display]\nconflict_lines = 9\n"), 0644))

	out, _, err := c.run("config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# Built-in amu settings")
	assert.Contains(t, out, "conflict_lines = 5")
}

func TestVersionCommand(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "amu version")
	assert.Contains(t, out, "commit:")
}

func TestTopicsIndex(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "registry")
	assert.Contains(t, out, "--dry-run")
}

func TestExitCodeReportsErrors(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, 0, ExitCode(&stderr, nil))
	assert.Empty(t, stderr.String())

	code := ExitCode(&stderr, errors.New(errors.ErrNotRegistered, "not registered: /x"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: not registered: /x")
}

func TestManPage(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("man")
	require.NoError(t, err)
	assert.Contains(t, out, `.TH "AMU" "1"`)
	assert.Contains(t, out, "amu manual")
}

func TestCompletion(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}
