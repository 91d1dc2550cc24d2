package meshio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridmesh/treemesh"
)

func uniformSpacing(dim, levels int) [][]float64 {
	n := 1 << uint(levels)
	h := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		h[d] = make([]float64, n)
		for i := range h[d] {
			h[d][i] = 1.0
		}
	}
	return h
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m, err := treemesh.NewMesh(uniformSpacing(2, 2), 2)
	require.NoError(t, err)
	require.NoError(t, m.RefineCell(treemesh.Pointer{Dim: 2, Level: 0}))

	data, err := Encode(m)
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, m.NC(), restored.NC())
	require.Equal(t, m.SortedLeaves(), restored.SortedLeaves())
	require.Equal(t, m.Levels(), restored.Levels())
}

func TestDecodeRejectsBadJSON(t *testing.T) {
	_, err := Decode([]byte("not json"))
	require.Error(t, err)
}

func TestFromStateRejectsNonTilingLeaves(t *testing.T) {
	st := State{H: uniformSpacing(2, 1), Levels: 1, Leaves: []uint64{1}}
	_, err := FromState(st)
	require.Error(t, err)
}
