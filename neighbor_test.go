package treemesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildScenario5 reproduces the refine sequence from spec.md §8 scenario 5
// (and original_source/SimPEG/Mesh/PointerTree.py's __main__ block):
// T = Tree([h, 8]), levels=3, then refineCell at [0,0,0], [4,4,1], [0,0,1],
// [2,2,2], yielding 13 leaves.
func buildScenario5(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewMesh(uniformSpacing(2, 3), 3)
	require.NoError(t, err)

	require.NoError(t, m.RefineCell(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 0}))
	require.NoError(t, m.RefineCell(Pointer{I: [3]int{4, 4}, Dim: 2, Level: 1}))
	require.NoError(t, m.RefineCell(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 1}))
	require.NoError(t, m.RefineCell(Pointer{I: [3]int{2, 2}, Dim: 2, Level: 2}))
	return m
}

func TestScenario5LeafCount(t *testing.T) {
	m := buildScenario5(t)
	require.Equal(t, 13, m.NC())
}

// TestScenario5NextCellLarger reproduces
// T._getNextCell([2,0,2]) == T._index([4,0,1]): a level-2 cell's +x
// neighbor is the bigger level-1 cell beside it.
func TestScenario5NextCellLarger(t *testing.T) {
	m := buildScenario5(t)
	p := Pointer{I: [3]int{2, 0}, Dim: 2, Level: 2}
	n := m.NextCell(p, 0, 1)
	require.Equal(t, NeighborSame, n.Kind)
	require.Equal(t, m.Index(Pointer{I: [3]int{4, 0}, Dim: 2, Level: 1}), n.ID)
}

// TestScenario5NextCellNone reproduces
// T._getNextCell([4,0,1], positive=True) is None: the domain boundary.
func TestScenario5NextCellNone(t *testing.T) {
	m := buildScenario5(t)
	p := Pointer{I: [3]int{4, 0}, Dim: 2, Level: 1}
	n := m.NextCell(p, 0, 1)
	require.Equal(t, NeighborNone, n.Kind)
}

// TestScenario5NextCellSmaller reproduces
// T._getNextCell([0,4,1]) == [T._index([4,4,2]), T._index([4,6,2])]: a
// level-1 cell's +x neighbor is two smaller level-2 cells.
func TestScenario5NextCellSmaller(t *testing.T) {
	m := buildScenario5(t)
	p := Pointer{I: [3]int{0, 4}, Dim: 2, Level: 1}
	n := m.NextCell(p, 0, 1)
	require.Equal(t, NeighborSmaller, n.Kind)

	want := []CellID{
		m.Index(Pointer{I: [3]int{4, 4}, Dim: 2, Level: 2}),
		m.Index(Pointer{I: [3]int{4, 6}, Dim: 2, Level: 2}),
	}
	require.ElementsMatch(t, want, n.IDs())
}

// TestScenario5NextCellNestedSmaller reproduces
// T._getNextCell([4,0,1], positive=False) ==
//
//	[T._index([2,0,2]), [T._index([3,2,3]), T._index([3,3,3])]]
//
// a larger cell's -x neighbor nests: one same-size-as-expected cell plus a
// further-refined pair, since the tree is not level-balanced there.
func TestScenario5NextCellNestedSmaller(t *testing.T) {
	m := buildScenario5(t)
	p := Pointer{I: [3]int{4, 0}, Dim: 2, Level: 1}
	n := m.NextCell(p, 0, -1)
	require.Equal(t, NeighborSmaller, n.Kind)

	want := []CellID{
		m.Index(Pointer{I: [3]int{2, 0}, Dim: 2, Level: 2}),
		m.Index(Pointer{I: [3]int{3, 2}, Dim: 2, Level: 3}),
		m.Index(Pointer{I: [3]int{3, 3}, Dim: 2, Level: 3}),
	}
	require.ElementsMatch(t, want, n.IDs())
}

func TestNeighborIDsFlattensNested(t *testing.T) {
	n := Neighbor{
		Kind: NeighborSmaller,
		Smaller: []Neighbor{
			sameNeighbor(7),
			{Kind: NeighborSmaller, Smaller: []Neighbor{sameNeighbor(1), sameNeighbor(2)}},
		},
	}
	require.ElementsMatch(t, []CellID{7, 1, 2}, n.IDs())
}

func TestNextCellOutsideDomainReturnsNone(t *testing.T) {
	m := buildScenario5(t)
	p := Pointer{I: [3]int{0, 0}, Dim: 2, Level: 3}
	require.Equal(t, NeighborNone, m.NextCell(p, 0, -1).Kind)
	require.Equal(t, NeighborNone, m.NextCell(p, 1, -1).Kind)
}
