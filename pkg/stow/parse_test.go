// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test parsing of simulated link tool transcripts

package stow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParsePlanLinkAndUnlink(t *testing.T) {
	transcript := `WARNING: in simulation mode so not modifying filesystem.
UNLINK: old.txt
LINK: a.txt => ../dotfiles/src/a.txt
`
	want := []Operation{
		{Action: ActionUnlink, Path: "old.txt"},
		{Action: ActionLink, Path: "a.txt", Detail: "../dotfiles/src/a.txt"},
	}

	if diff := cmp.Diff(want, ParsePlan(transcript)); diff != "" {
		t.Errorf("ParsePlan mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlanTranscripts(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []Operation
	}{
		{
			name:       "empty",
			transcript: "",
			want:       nil,
		},
		{
			name: "headers only",
			transcript: `Planning stow of package src... done
WARNING: in simulation mode so not modifying filesystem.`,
			want: nil,
		},
		{
			name: "mkdir is not an operation",
			transcript: `MKDIR: sub
LINK: sub/b.txt => ../../src/sub/b.txt`,
			want: []Operation{
				{Action: ActionLink, Path: "sub/b.txt", Detail: "../../src/sub/b.txt"},
			},
		},
		{
			name:       "skip",
			transcript: "--- Skipping a.txt as it already points to ../src/a.txt",
			want: []Operation{
				{Action: ActionSkip, Path: "a.txt", Detail: "as it already points to ../src/a.txt"},
			},
		},
		{
			name: "existing target conflict",
			transcript: `WARNING! stowing src would cause conflicts:
  * existing target is neither a link nor a directory: a.txt
All operations aborted.`,
			want: []Operation{
				{Action: ActionConflict, Path: "a.txt", Detail: "existing target is neither a link nor a directory"},
			},
		},
		{
			name:       "cannot stow conflict",
			transcript: "  * cannot stow ../src/a.txt over existing target a.txt since neither a link nor a directory and --adopt not specified",
			want: []Operation{
				{Action: ActionConflict, Path: "a.txt", Detail: "neither a link nor a directory and --adopt not specified"},
			},
		},
		{
			name:       "legacy conflict",
			transcript: "CONFLICT when stowing src: existing target is not owned by stow: b.txt",
			want: []Operation{
				{Action: ActionConflict, Path: "b.txt", Detail: "CONFLICT when stowing src: existing target is not owned by stow"},
			},
		},
		{
			name:       "link without arrow",
			transcript: "LINK: c.txt",
			want:       []Operation{{Action: ActionLink, Path: "c.txt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParsePlan(tt.transcript)); diff != "" {
				t.Errorf("ParsePlan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	assert.True(t, HasConflict("CONFLICT when stowing"))
	assert.True(t, HasConflict("  * existing target is neither a link nor a directory: a.txt"))
	assert.True(t, HasConflict("* cannot stow x over existing target y since z"))
	assert.False(t, HasConflict("LINK: a.txt => ../src/a.txt"))
	assert.False(t, HasConflict(""))
}

func TestCount(t *testing.T) {
	ops := ParsePlan("LINK: a => x\nLINK: b => y\nUNLINK: c\n")
	counts := Count(ops)
	assert.Equal(t, 2, counts[ActionLink])
	assert.Equal(t, 1, counts[ActionUnlink])
	assert.Equal(t, 0, counts[ActionConflict])
}
