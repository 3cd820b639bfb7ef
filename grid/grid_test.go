package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, h, w int) *Grid {
	t.Helper()
	g, err := New(h, w)
	require.NoError(t, err)
	return g
}

func roleAt(t *testing.T, g *Grid, p Pos) Role {
	t.Helper()
	r, err := g.Role(p)
	require.NoError(t, err)
	return r
}

func TestNew_InvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidSize, "New(%d, %d)", dims[0], dims[1])
	}
}

// TestSetRole_OutOfBounds verifies every coordinate outside the extents is rejected
func TestSetRole_OutOfBounds(t *testing.T) {
	g := mustGrid(t, 3, 4)
	for _, p := range []Pos{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		assert.ErrorIs(t, g.SetRole(p, Wall), ErrOutOfBounds, "SetRole(%v)", p)
		_, err := g.Role(p)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.False(t, g.InBounds(p))
	}
}

// TestWallToggle verifies double toggle returns the cell to Empty
func TestWallToggle(t *testing.T) {
	g := mustGrid(t, 3, 3)
	p := Pos{1, 1}

	require.NoError(t, g.SetRole(p, Wall))
	assert.Equal(t, Wall, roleAt(t, g, p))

	require.NoError(t, g.SetRole(p, Wall))
	assert.Equal(t, Empty, roleAt(t, g, p))
}

// TestWallOnEndpointIsNoop verifies walls never replace Start or Goal
func TestWallOnEndpointIsNoop(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.SetRole(Pos{0, 0}, Start))
	require.NoError(t, g.SetRole(Pos{2, 2}, Goal))

	require.NoError(t, g.SetRole(Pos{0, 0}, Wall))
	require.NoError(t, g.SetRole(Pos{2, 2}, Wall))

	assert.Equal(t, Start, roleAt(t, g, Pos{0, 0}))
	assert.Equal(t, Goal, roleAt(t, g, Pos{2, 2}))
	assert.Equal(t, 0, g.Count(Wall))
}

func TestWallOnSearchMarkIsNoop(t *testing.T) {
	g := mustGrid(t, 2, 2)
	require.NoError(t, g.Mark(Pos{0, 1}, Visited))
	require.NoError(t, g.SetRole(Pos{0, 1}, Wall))
	assert.Equal(t, Visited, roleAt(t, g, Pos{0, 1}))
}

// TestEndpointUniqueness verifies re-placing Start or Goal moves the single cell
func TestEndpointUniqueness(t *testing.T) {
	g := mustGrid(t, 4, 4)

	require.NoError(t, g.SetRole(Pos{0, 0}, Start))
	require.NoError(t, g.SetRole(Pos{1, 1}, Start))
	require.NoError(t, g.SetRole(Pos{3, 3}, Goal))
	require.NoError(t, g.SetRole(Pos{2, 3}, Goal))

	assert.Equal(t, 1, g.Count(Start))
	assert.Equal(t, 1, g.Count(Goal))
	assert.Equal(t, Empty, roleAt(t, g, Pos{0, 0}))
	assert.Equal(t, Empty, roleAt(t, g, Pos{3, 3}))

	s, ok := g.Start()
	require.True(t, ok)
	assert.Equal(t, Pos{1, 1}, s)
	goal, ok := g.Goal()
	require.True(t, ok)
	assert.Equal(t, Pos{2, 3}, goal)
}

// TestEndpointOnWallIsNoop verifies the whole placement is skipped, previous endpoint kept
func TestEndpointOnWallIsNoop(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.SetRole(Pos{0, 0}, Start))
	require.NoError(t, g.SetRole(Pos{1, 1}, Wall))

	require.NoError(t, g.SetRole(Pos{1, 1}, Start))
	require.NoError(t, g.SetRole(Pos{1, 1}, Goal))

	assert.Equal(t, Wall, roleAt(t, g, Pos{1, 1}))
	assert.Equal(t, Start, roleAt(t, g, Pos{0, 0}))
	_, ok := g.Goal()
	assert.False(t, ok)
}

// TestEndpointReplacesOtherEndpoint verifies Start placed on Goal unsets the goal
func TestEndpointReplacesOtherEndpoint(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.SetRole(Pos{0, 0}, Start))
	require.NoError(t, g.SetRole(Pos{2, 2}, Goal))

	require.NoError(t, g.SetRole(Pos{2, 2}, Start))

	assert.Equal(t, Start, roleAt(t, g, Pos{2, 2}))
	assert.Equal(t, Empty, roleAt(t, g, Pos{0, 0}))
	_, ok := g.Goal()
	assert.False(t, ok)
	assert.Equal(t, 0, g.Count(Goal))
}

func TestSetRole_InvalidRole(t *testing.T) {
	g := mustGrid(t, 2, 2)
	for _, r := range []Role{Empty, Visited, Path} {
		assert.ErrorIs(t, g.SetRole(Pos{0, 0}, r), ErrInvalidRole, "SetRole(%v)", r)
	}
	assert.ErrorIs(t, g.Mark(Pos{0, 0}, Wall), ErrInvalidRole)
}

// TestMarkKeepsEndpoints verifies search marks never overwrite Start, Goal or Wall
func TestMarkKeepsEndpoints(t *testing.T) {
	g, err := Parse(`
		S#
		.G
	`)
	require.NoError(t, err)

	for _, p := range []Pos{{0, 0}, {0, 1}, {1, 1}} {
		require.NoError(t, g.Mark(p, Path))
	}
	require.NoError(t, g.Mark(Pos{1, 0}, Visited))

	assert.Equal(t, "S#\noG\n", g.String())
}

// TestResetSearchMarks_Idempotent verifies a second reset changes nothing
func TestResetSearchMarks_Idempotent(t *testing.T) {
	g, err := Parse(`
		S.o*
		#oo*
		..#G
	`)
	require.NoError(t, err)

	g.ResetSearchMarks()
	once := g.Snapshot()
	g.ResetSearchMarks()
	twice := g.Snapshot()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second reset changed the grid (-once +twice):\n%s", diff)
	}
	assert.Equal(t, "S...\n#...\n..#G\n", g.String())
	assert.Equal(t, 0, g.Count(Visited)+g.Count(Path))
}

func TestClearWalls(t *testing.T) {
	g, err := Parse(`
		S##
		#.G
	`)
	require.NoError(t, err)
	g.ClearWalls()
	assert.Equal(t, "S..\n..G\n", g.String())
}

// TestNeighbors4_Order verifies east, west, south, north ordering and wall filtering
func TestNeighbors4_Order(t *testing.T) {
	g := mustGrid(t, 3, 3)
	assert.Equal(t, []Pos{{1, 2}, {1, 0}, {2, 1}, {0, 1}}, g.Neighbors4(Pos{1, 1}))

	require.NoError(t, g.SetRole(Pos{1, 2}, Wall))
	require.NoError(t, g.SetRole(Pos{0, 1}, Wall))
	assert.Equal(t, []Pos{{1, 0}, {2, 1}}, g.Neighbors4(Pos{1, 1}))

	// Corner drops out-of-bounds neighbors
	assert.Equal(t, []Pos{{0, 1}, {1, 0}}, g.Neighbors4(Pos{0, 0}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		err    error
	}{
		{"Valid", "S..\n.#.\n..G", nil},
		{"Empty", "  \n", ErrBadLayout},
		{"Ragged", "S..\n..", ErrBadLayout},
		{"UnknownGlyph", "S.x", ErrBadLayout},
		{"TwoStarts", "S.S", ErrBadLayout},
		{"TwoGoals", "G\nG", ErrBadLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.layout)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, g.Height())
			assert.Equal(t, 3, g.Width())
			s, ok := g.Start()
			assert.True(t, ok)
			assert.Equal(t, Pos{0, 0}, s)
			goal, ok := g.Goal()
			assert.True(t, ok)
			assert.Equal(t, Pos{2, 2}, goal)
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := mustGrid(t, 2, 2)
	snap := g.Snapshot()
	require.NoError(t, g.SetRole(Pos{0, 0}, Wall))

	assert.Equal(t, Empty, snap.At(Pos{0, 0}))
	assert.Equal(t, Wall, g.Snapshot().At(Pos{0, 0}))
	assert.Equal(t, Empty, snap.At(Pos{5, 5}))
}

func TestPos(t *testing.T) {
	assert.Equal(t, 16, Pos{2, 0}.Manhattan(Pos{9, 9}))
	assert.True(t, Pos{1, 1}.Adjacent(Pos{1, 2}))
	assert.False(t, Pos{1, 1}.Adjacent(Pos{2, 2}))
	assert.Equal(t, "(3,4)", Pos{3, 4}.String())
}
