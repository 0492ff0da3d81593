// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test in-memory registry bindings

package registry

import (
	"testing"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(r *Registry) map[string][]string {
	out := make(map[string][]string)
	for _, t := range r.Targets() {
		out[t] = r.SourcesOf(t)
	}
	return out
}

func seeded(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.Add("/home/u/.config", "/home/u/dotfiles/config"))
	require.NoError(t, r.Add("/home/u/.config", "/home/u/work/config"))
	require.NoError(t, r.Add("/home/u", "/home/u/dotfiles/home"))
	return r
}

func TestNew(t *testing.T) {
	r := New()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Targets())
	assert.Nil(t, r.SourcesOf("/nowhere"))
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("/t", "/z"))
	require.NoError(t, r.Add("/t", "/a"))
	require.NoError(t, r.Add("/t", "/m"))

	assert.Equal(t, []string{"/z", "/a", "/m"}, r.SourcesOf("/t"))
	assert.True(t, r.Has("/t"))
	assert.Equal(t, 1, r.Len())
}

func TestAddRemoveRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		target string
		source string
	}{
		{"new target", "/srv/www", "/home/u/site"},
		{"existing target", "/home/u/.config", "/home/u/extra"},
		{"source of another target", "/home/u", "/home/u/dotfiles/config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := seeded(t)
			before := snapshot(r)

			require.NoError(t, r.Add(tt.target, tt.source))
			require.NoError(t, r.Remove(tt.target, tt.source))

			if diff := cmp.Diff(before, snapshot(r)); diff != "" {
				t.Errorf("registry changed after add/remove (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddDuplicateFails(t *testing.T) {
	r := seeded(t)
	before := snapshot(r)

	err := r.Add("/home/u/.config", "/home/u/work/config")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyRegistered))
	assert.Equal(t, "Already registered: /home/u/work/config -> /home/u/.config", err.Error())
	assert.Empty(t, cmp.Diff(before, snapshot(r)))
}

func TestRemoveAbsentFails(t *testing.T) {
	tests := []struct {
		name   string
		target string
		source string
	}{
		{"unknown target", "/nowhere", "/home/u/dotfiles/home"},
		{"unknown source", "/home/u/.config", "/home/u/dotfiles/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := seeded(t)
			before := snapshot(r)

			err := r.Remove(tt.target, tt.source)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrNotRegistered))
			assert.Contains(t, err.Error(), "Not registered")
			assert.Empty(t, cmp.Diff(before, snapshot(r)))
		})
	}
}

func TestRemoveLastSourceDropsTarget(t *testing.T) {
	r := seeded(t)

	require.NoError(t, r.Remove("/home/u", "/home/u/dotfiles/home"))
	assert.False(t, r.Has("/home/u"))
	assert.Nil(t, r.SourcesOf("/home/u"))
	assert.Equal(t, []string{"/home/u/.config"}, r.Targets())
}

func TestRemoveMiddleSource(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("/t", "/a"))
	require.NoError(t, r.Add("/t", "/b"))
	require.NoError(t, r.Add("/t", "/c"))

	require.NoError(t, r.Remove("/t", "/b"))
	assert.Equal(t, []string{"/a", "/c"}, r.SourcesOf("/t"))
}

func TestSourcesOfReturnsCopy(t *testing.T) {
	r := seeded(t)

	sources := r.SourcesOf("/home/u/.config")
	sources[0] = "/mutated"

	assert.Equal(t, "/home/u/dotfiles/config", r.SourcesOf("/home/u/.config")[0])
}

func TestTargetsSorted(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("/zeta", "/s1"))
	require.NoError(t, r.Add("/alpha", "/s2"))
	require.NoError(t, r.Add("/mid", "/s3"))

	assert.Equal(t, []string{"/alpha", "/mid", "/zeta"}, r.Targets())
}

func TestTargetsWithSource(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Add("/srv", "/home/u/dotfiles/config"))

	assert.Equal(t, []string{"/home/u/.config", "/srv"}, r.TargetsWithSource("/home/u/dotfiles/config"))
	assert.Nil(t, r.TargetsWithSource("/unknown"))
}

func TestRemoveTarget(t *testing.T) {
	r := seeded(t)

	removed := r.RemoveTarget("/home/u/.config")
	assert.Equal(t, []string{"/home/u/dotfiles/config", "/home/u/work/config"}, removed)
	assert.False(t, r.Has("/home/u/.config"))
	assert.Equal(t, 1, r.Len())

	assert.Nil(t, r.RemoveTarget("/nowhere"))
}
