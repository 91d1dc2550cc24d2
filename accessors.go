package treemesh

import "github.com/golang/geo/r3"

// Number rebuilds the face/edge enumeration if the mesh has mutated since
// the last call (spec.md §4.5); it never fails today but returns error to
// leave room for a future geometric consistency check without breaking
// callers.
func (m *Mesh) Number() error {
	m.number()
	return nil
}

// NF returns the total face count and the per-axis breakdown.
func (m *Mesh) NF() (total, nFx, nFy, nFz int) {
	n := m.number()
	return n.nF, n.nFace[0], n.nFace[1], n.nFace[2]
}

// NE returns the total edge count and the per-axis breakdown (3D only; all
// zero in 2D).
func (m *Mesh) NE() (total, nEx, nEy, nEz int) {
	n := m.number()
	return n.nE, n.nEdge[0], n.nEdge[1], n.nEdge[2]
}

// Vol returns the volume of every leaf, in SortedLeaves order.
func (m *Mesh) Vol() []float64 {
	n := m.number()
	out := make([]float64, len(n.vol))
	copy(out, n.vol)
	return out
}

// Area returns the area of every face, concatenated Fx, then Fy, then Fz.
func (m *Mesh) Area() []float64 {
	n := m.number()
	out := make([]float64, 0, n.nF)
	for axis := 0; axis < m.dim; axis++ {
		out = append(out, n.faceArea[axis]...)
	}
	return out
}

// Edge returns the length of every edge, concatenated Ex, Ey, Ez (3D only).
func (m *Mesh) Edge() []float64 {
	n := m.number()
	out := make([]float64, 0, n.nE)
	for axis := 0; axis < 3; axis++ {
		out = append(out, n.edgeLength[axis]...)
	}
	return out
}

func toVec3s(pts [][3]float64) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// GridCC returns the center of every leaf, in SortedLeaves order.
func (m *Mesh) GridCC() []r3.Vector {
	sorted := m.SortedLeaves()
	out := make([]r3.Vector, len(sorted))
	for i, id := range sorted {
		out[i] = m.CellCenter(m.PointerOf(id))
	}
	return out
}

// GridFx, GridFy and GridFz return the centers of every face normal to x, y
// and z respectively, in registration order.
func (m *Mesh) GridFx() []r3.Vector { return toVec3s(m.number().faceGrid[0]) }
func (m *Mesh) GridFy() []r3.Vector { return toVec3s(m.number().faceGrid[1]) }
func (m *Mesh) GridFz() []r3.Vector { return toVec3s(m.number().faceGrid[2]) }

// GridEx, GridEy and GridEz return the centers of every edge tangent to x,
// y and z respectively (3D only).
func (m *Mesh) GridEx() []r3.Vector { return toVec3s(m.number().edgeGrid[0]) }
func (m *Mesh) GridEy() []r3.Vector { return toVec3s(m.number().edgeGrid[1]) }
func (m *Mesh) GridEz() []r3.Vector { return toVec3s(m.number().edgeGrid[2]) }

// HangingFacesX, HangingFacesY and HangingFacesZ return the ids (within
// their own axis's block) of every face adjoining a resolution transition.
func (m *Mesh) HangingFacesX() []int { return append([]int(nil), m.number().hanging[0]...) }
func (m *Mesh) HangingFacesY() []int { return append([]int(nil), m.number().hanging[1]...) }
func (m *Mesh) HangingFacesZ() []int { return append([]int(nil), m.number().hanging[2]...) }

// Cell returns the CellView of the i-th leaf in SortedLeaves order.
func (m *Mesh) Cell(i int) *CellView {
	sorted := m.SortedLeaves()
	return m.cellView(sorted[i])
}
