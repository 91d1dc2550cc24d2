package treemesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMeshValidation(t *testing.T) {
	_, err := NewMesh([][]float64{{1, 1}}, 1)
	require.Error(t, err)
	var invalid *InvalidSpecError
	require.ErrorAs(t, err, &invalid)

	_, err = NewMesh(uniformSpacing(2, 2), 2)
	require.NoError(t, err)

	bad := uniformSpacing(2, 2)
	bad[0][0] = 0
	_, err = NewMesh(bad, 2)
	require.Error(t, err)

	bad2 := uniformSpacing(2, 2)
	bad2[1] = bad2[1][:2]
	_, err = NewMesh(bad2, 2)
	require.Error(t, err)
}

func TestRefineCellSplitsIntoChildren(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 2), 2)
	require.NoError(t, err)
	require.Equal(t, 1, m.NC())

	root := Pointer{Dim: 2, Level: 0}
	require.NoError(t, m.RefineCell(root))
	require.Equal(t, 4, m.NC())

	for _, p := range []Pointer{
		{I: [3]int{0, 0}, Dim: 2, Level: 1},
		{I: [3]int{2, 0}, Dim: 2, Level: 1},
		{I: [3]int{0, 2}, Dim: 2, Level: 1},
		{I: [3]int{2, 2}, Dim: 2, Level: 1},
	} {
		require.True(t, m.Contains(p), "expected child %+v", p)
	}
}

func TestRefineCellRejectsNonLeafAndMaxLevel(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 1), 1)
	require.NoError(t, err)
	root := Pointer{Dim: 2, Level: 0}
	require.NoError(t, m.RefineCell(root))

	err = m.RefineCell(root)
	require.Error(t, err)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)

	child := Pointer{I: [3]int{0, 0}, Dim: 2, Level: 1}
	err = m.RefineCell(child)
	require.Error(t, err)
}

func TestCoarsenCellMergesSiblings(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 2), 2)
	require.NoError(t, err)
	root := Pointer{Dim: 2, Level: 0}
	require.NoError(t, m.RefineCell(root))
	require.Equal(t, 4, m.NC())

	require.NoError(t, m.CoarsenCell(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 1}))
	require.Equal(t, 1, m.NC())
	require.True(t, m.Contains(root))
}

func TestCoarsenCellFailsWithoutAllSiblings(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 3), 3)
	require.NoError(t, err)
	root := Pointer{Dim: 2, Level: 0}
	require.NoError(t, m.RefineCell(root))
	require.NoError(t, m.RefineCell(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 1}))

	err = m.CoarsenCell(Pointer{I: [3]int{4, 0}, Dim: 2, Level: 1})
	require.Error(t, err)
}

func TestInsertCellsValidatesTiling(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 1), 1)
	require.NoError(t, err)

	full := []CellID{
		m.Index(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 1}),
		m.Index(Pointer{I: [3]int{1, 0}, Dim: 2, Level: 1}),
		m.Index(Pointer{I: [3]int{0, 1}, Dim: 2, Level: 1}),
		m.Index(Pointer{I: [3]int{1, 1}, Dim: 2, Level: 1}),
	}
	require.NoError(t, m.InsertCells(full))
	require.Equal(t, 4, m.NC())

	require.Error(t, m.InsertCells(full[:3]))
	require.Error(t, m.InsertCells(append(full, full[0])))
}

func TestRefineRecursive(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 3), 3)
	require.NoError(t, err)

	// Refine progressively finer toward the domain's (0,0) corner, mirroring
	// the distance-threshold predicate in PointerTree.py's __main__ example.
	predicate := func(v *CellView) int {
		dist := v.Center[0]*v.Center[0] + v.Center[1]*v.Center[1]
		switch {
		case dist < 4:
			return 3
		case dist < 9:
			return 2
		case dist < 36:
			return 1
		default:
			return 0
		}
	}
	m.Refine(predicate, true)

	require.True(t, m.Contains(Pointer{I: [3]int{0, 0}, Dim: 2, Level: 3}))
	require.Greater(t, m.NC(), 1)
}

func TestRefineBoolShim(t *testing.T) {
	m, err := NewMesh(uniformSpacing(2, 1), 1)
	require.NoError(t, err)
	m.RefineBool(func(v *CellView) bool { return true }, false)
	require.Equal(t, 4, m.NC())
}
