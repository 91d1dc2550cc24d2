package treemesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nonUniformSpacing2D() [][]float64 {
	// original_source/SimPEG/Mesh/PointerTree.py.__main__'s own mesh:
	// T = Tree([np.r_[1,2,1,5,2,3,1,1], 8]).
	return [][]float64{
		{1, 2, 1, 5, 2, 3, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
}

func TestCellCenterAndCorner(t *testing.T) {
	m, err := NewMesh(nonUniformSpacing2D(), 3)
	require.NoError(t, err)

	p := Pointer{I: [3]int{0, 0}, Dim: 2, Level: 3}
	corner := m.CellCorner(p)
	require.InDelta(t, 0, corner.X, 1e-9)
	require.InDelta(t, 0, corner.Y, 1e-9)
	center := m.CellCenter(p)
	require.InDelta(t, 0.5, center.X, 1e-9)
	require.InDelta(t, 0.5, center.Y, 1e-9)

	p2 := Pointer{I: [3]int{2, 0}, Dim: 2, Level: 3}
	corner2 := m.CellCorner(p2)
	require.InDelta(t, 3, corner2.X, 1e-9) // 1+2
}

func TestCellVolumeSumsToDomain(t *testing.T) {
	m, err := NewMesh(nonUniformSpacing2D(), 3)
	require.NoError(t, err)

	var total float64
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			total += m.CellVolume(Pointer{I: [3]int{x, y}, Dim: 2, Level: 3})
		}
	}
	require.InDelta(t, 16*8, total, 1e-9) // sum(h[0])=16, sum(h[1])=8
}

func TestCellCornersCount(t *testing.T) {
	m, err := NewMesh(uniformSpacing(3, 2), 2)
	require.NoError(t, err)
	corners := m.cellCorners(Pointer{Dim: 3, Level: 0})
	require.Len(t, corners, 8)
}

func TestFaceAreaMatchesPerpendicularExtents(t *testing.T) {
	m, err := NewMesh(nonUniformSpacing2D(), 3)
	require.NoError(t, err)
	p := Pointer{I: [3]int{0, 0}, Dim: 2, Level: 3}
	require.InDelta(t, 1.0, m.FaceArea(p, 0), 1e-9) // perpendicular extent is h[1][0]=1
	require.InDelta(t, 1.0, m.FaceArea(p, 1), 1e-9)
}

func TestEdgeLength3D(t *testing.T) {
	h := [][]float64{
		{1, 1}, {2, 2}, {3, 3},
	}
	m, err := NewMesh(h, 1)
	require.NoError(t, err)
	p := Pointer{Dim: 3, Level: 0}
	require.InDelta(t, 2.0, m.EdgeLength(p, 0), 1e-9)
	require.InDelta(t, 4.0, m.EdgeLength(p, 1), 1e-9)
	require.InDelta(t, 6.0, m.EdgeLength(p, 2), 1e-9)
}
