// Package tensormesh is a minimal regular tensor-product mesh used only as
// a comparison fixture: spec.md §1 keeps the tensor mesh an external
// collaborator, built here only deep enough for operators_test.go's
// "regular-refinement equivalence" property (a fully-refined treemesh.Mesh
// and a TensorMesh over the same spacings enumerate the same cells, faces
// and divergence operator, just in a different order).
package tensormesh

import "github.com/golang/geo/r3"

// TensorMesh is a non-adaptive Cartesian mesh with a fixed per-axis cell
// count; it never refines and never hangs.
type TensorMesh struct {
	h   [][]float64
	dim int
	n   [3]int
}

// New builds a TensorMesh from per-axis spacing vectors (2 or 3 axes).
func New(h [][]float64) *TensorMesh {
	dim := len(h)
	t := &TensorMesh{h: h, dim: dim}
	for d := 0; d < dim; d++ {
		t.n[d] = len(h[d])
	}
	return t
}

func nodes(h []float64) []float64 {
	out := make([]float64, len(h)+1)
	for i, v := range h {
		out[i+1] = out[i] + v
	}
	return out
}

func centers(h []float64) []float64 {
	nd := nodes(h)
	out := make([]float64, len(h))
	for i := range h {
		out[i] = (nd[i] + nd[i+1]) / 2
	}
	return out
}

func (t *TensorMesh) axisValues(axis int, useNodes bool) []float64 {
	if useNodes {
		return nodes(t.h[axis])
	}
	return centers(t.h[axis])
}

func (t *TensorMesh) product(useNodes [3]bool) [][3]float64 {
	x := t.axisValues(0, useNodes[0])
	y := t.axisValues(1, useNodes[1])
	var z []float64
	if t.dim == 3 {
		z = t.axisValues(2, useNodes[2])
	} else {
		z = []float64{0}
	}
	out := make([][3]float64, 0, len(x)*len(y)*len(z))
	for _, zv := range z {
		for _, yv := range y {
			for _, xv := range x {
				out = append(out, [3]float64{xv, yv, zv})
			}
		}
	}
	return out
}

// NC returns the total cell count.
func (t *TensorMesh) NC() int {
	c := t.n[0] * t.n[1]
	if t.dim == 3 {
		c *= t.n[2]
	}
	return c
}

// GridCC returns cell centers in lexicographic (x fastest) order.
func (t *TensorMesh) GridCC() []r3.Vector {
	return toVec3(t.product([3]bool{false, false, false}))
}

// GridFx/GridFy/GridFz return face centers normal to x/y/z.
func (t *TensorMesh) GridFx() []r3.Vector { return toVec3(t.product([3]bool{true, false, false})) }
func (t *TensorMesh) GridFy() []r3.Vector { return toVec3(t.product([3]bool{false, true, false})) }
func (t *TensorMesh) GridFz() []r3.Vector { return toVec3(t.product([3]bool{false, false, true})) }

func toVec3(pts [][3]float64) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

// Vol returns the volume of every cell, in GridCC order.
func (t *TensorMesh) Vol() []float64 {
	hx, hy := t.h[0], t.h[1]
	var hz []float64
	if t.dim == 3 {
		hz = t.h[2]
	} else {
		hz = []float64{1}
	}
	out := make([]float64, 0, t.NC())
	for k := range hz {
		for j := range hy {
			for i := range hx {
				v := hx[i] * hy[j]
				if t.dim == 3 {
					v *= hz[k]
				}
				out = append(out, v)
			}
		}
	}
	return out
}

// faceCount returns the number of faces normal to axis.
func (t *TensorMesh) faceCount(axis int) int {
	c := 1
	for d := 0; d < t.dim; d++ {
		if d == axis {
			c *= t.n[d] + 1
		} else {
			c *= t.n[d]
		}
	}
	return c
}

// NF returns the total face count and the per-axis breakdown.
func (t *TensorMesh) NF() (total, nFx, nFy, nFz int) {
	nFx = t.faceCount(0)
	nFy = t.faceCount(1)
	if t.dim == 3 {
		nFz = t.faceCount(2)
	}
	return nFx + nFy + nFz, nFx, nFy, nFz
}

// Area returns the area of every face, concatenated Fx, Fy, [Fz].
func (t *TensorMesh) Area() []float64 {
	var out []float64
	for axis := 0; axis < t.dim; axis++ {
		out = append(out, t.faceAreas(axis)...)
	}
	return out
}

func (t *TensorMesh) faceAreas(axis int) []float64 {
	n := t.faceCount(axis)
	out := make([]float64, n)
	// Area is independent of position along axis; each value is stored at
	// the face's lexicographic (x fastest) index, the order of GridF*.
	switch t.dim {
	case 2:
		other := t.h[1-axis]
		normalCount := t.n[axis] + 1
		for k := 0; k < normalCount; k++ {
			for j, v := range other {
				if axis == 0 {
					out[k+normalCount*j] = v
				} else {
					out[j+len(other)*k] = v
				}
			}
		}
	case 3:
		oa, ob := otherTwo(axis)
		ha, hb := t.h[oa], t.h[ob]
		normalCount := t.n[axis] + 1
		for k := 0; k < normalCount; k++ {
			for kb, vb := range hb {
				for ka, va := range ha {
					var c, cnt [3]int
					c[axis], c[oa], c[ob] = k, ka, kb
					cnt[axis], cnt[oa], cnt[ob] = normalCount, len(ha), len(hb)
					out[c[0]+cnt[0]*(c[1]+cnt[1]*c[2])] = va * vb
				}
			}
		}
	}
	return out
}

func otherTwo(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// FaceDiv assembles the dense divergence operator in lexicographic
// row/column order, mirroring (*treemesh.Mesh).FaceDiv's normalization
// (area/volume), for direct comparison against a uniformly refined
// treemesh.Mesh's FaceDiv under its permutation matrices.
func (t *TensorMesh) FaceDiv() [][]float64 {
	nc := t.NC()
	_, nFx, nFy, _ := t.NF()
	total := nFx + nFy
	if t.dim == 3 {
		_, _, _, nFz := t.NF()
		total = nFx + nFy + nFz
	}
	vol := t.Vol()
	area := t.Area()

	d := make([][]float64, nc)
	for i := range d {
		d[i] = make([]float64, total)
	}

	nx, ny := t.n[0], t.n[1]
	nz := 1
	if t.dim == 3 {
		nz = t.n[2]
	}

	cellIdx := func(i, j, k int) int { return i + nx*(j+ny*k) }

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				ci := cellIdx(i, j, k)
				// X faces: (nx+1) per row.
				fxm := i + (nx+1)*(j+ny*k)
				fxp := (i + 1) + (nx+1)*(j+ny*k)
				d[ci][fxm] += -area[fxm] / vol[ci]
				d[ci][fxp] += area[fxp] / vol[ci]

				// Y faces: nx per row, (ny+1) rows.
				fym := nFx + (i + nx*(j+(ny+1)*k))
				fyp := nFx + (i + nx*((j+1)+(ny+1)*k))
				d[ci][fym] += -area[fym] / vol[ci]
				d[ci][fyp] += area[fyp] / vol[ci]

				if t.dim == 3 {
					fzm := nFx + nFy + (i + nx*(j+ny*k))
					fzp := nFx + nFy + (i + nx*(j+ny*(k+1)))
					d[ci][fzm] += -area[fzm] / vol[ci]
					d[ci][fzp] += area[fzp] / vol[ci]
				}
			}
		}
	}
	return d
}
