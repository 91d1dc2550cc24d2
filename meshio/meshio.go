// Package meshio serializes and deserializes a Mesh's flat state: the
// spacings, the refinement level count, and the sorted active-leaf id list
// (spec.md §6 — "a higher layer may serialize (spacings, L, sorted leaf id
// list)"). Encoding goes through jsoniter's standard-library-compatible
// config, the same drop-in idiom the teacher's upstream (blevesearch/geo)
// reaches for elsewhere to avoid hand-rolling JSON walking.
package meshio

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/gridmesh/treemesh"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// State is the flat, serializable snapshot of a Mesh.
type State struct {
	H      [][]float64 `json:"h"`
	Levels int         `json:"levels"`
	Leaves []uint64    `json:"leaves"`
}

// Snapshot captures m's current state.
func Snapshot(m *treemesh.Mesh) State {
	sorted := m.SortedLeaves()
	leaves := make([]uint64, len(sorted))
	for i, id := range sorted {
		leaves[i] = uint64(id)
	}
	return State{H: m.Spacings(), Levels: m.Levels(), Leaves: leaves}
}

// Encode marshals m's state to JSON.
func Encode(m *treemesh.Mesh) ([]byte, error) {
	return jsonAPI.Marshal(Snapshot(m))
}

// Decode rebuilds a Mesh from its encoded state: a fresh root mesh at the
// decoded spacings/levels, with the leaf set replaced by InsertCells.
func Decode(data []byte) (*treemesh.Mesh, error) {
	var st State
	if err := jsonAPI.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return FromState(st)
}

// FromState rebuilds a Mesh from an already-decoded State.
func FromState(st State) (*treemesh.Mesh, error) {
	m, err := treemesh.NewMesh(st.H, st.Levels)
	if err != nil {
		return nil, err
	}
	ids := make([]treemesh.CellID, len(st.Leaves))
	for i, v := range st.Leaves {
		ids[i] = treemesh.CellID(v)
	}
	if err := m.InsertCells(ids); err != nil {
		return nil, err
	}
	return m, nil
}
