package treemesh

import (
	"math"

	"github.com/golang/geo/r3"
)

// DeflationKind selects which tensor-product enumeration Deflation averages
// down to (spec.md §4.6, "hanging-node deflation").
type DeflationKind int

const (
	// DeflationCC averages fine-grid cell centers into each leaf.
	DeflationCC DeflationKind = iota
)

func otherTwoAxes(axis int) [2]int {
	out := [2]int{}
	i := 0
	for d := 0; d < 3; d++ {
		if d != axis {
			out[i] = d
			i++
		}
	}
	return out
}

// FaceDiv assembles the discrete divergence operator D, shape (NC, NF):
// D[i, f] = ±area(f)/vol(i) for every face f touching leaf i, sign positive
// on the leaf's plus side and negative on its minus side. Grounded directly
// on PointerTree.py's faceDiv property (`Utils.sdiag(1./VOL) * D * sdiag(S)`),
// generalized from its 2-axis loop to m.Dim() axes.
func (m *Mesh) FaceDiv() (*CSR, error) {
	if m.faceDiv != nil && m.faceDivAt == m.version {
		return m.faceDiv, nil
	}
	n := m.number()
	sorted := m.SortedLeaves()
	c := newCOO(n.nC, n.nF)

	for i, id := range sorted {
		vol := n.vol[i]
		for axis := 0; axis < m.dim; axis++ {
			entry := n.c2f[id]
			for _, f := range entry[2*axis] {
				area := n.faceArea[axis][f]
				c.add(i, n.faceOffset[axis]+f, -area/vol)
			}
			for _, f := range entry[2*axis+1] {
				area := n.faceArea[axis][f]
				c.add(i, n.faceOffset[axis]+f, area/vol)
			}
		}
	}

	m.faceDiv = c.build()
	m.faceDivAt = m.version
	return m.faceDiv, nil
}

// EdgeCurl assembles the discrete curl operator C, shape (NF, NE): row f
// (a face normal to axis n, owned by leaf cell p) gets contributions from
// the edges bounding that face, each weighted by edge length / face area and
// signed by the counterclockwise loop
// convention (n, a, b) cyclic with a=(n+1)%3, b=(n+2)%3 — the standard
// Yee-grid curl stencil, generalized to resolution transitions by summing
// over however many finest-grid unit edges numberAxisEdges decomposed each
// side into (one, on a side with no hanging neighbor). 3D only:
// PointerTree.py never implements edges or curl (2D-only source), so this
// is built from first principles rather than grounded on a line-by-line
// original. Because every face's geometry and every leaf's own edges are
// both keyed on the same finest-grid coordinates, D*C is exactly zero even
// across hanging transitions (spec.md §8's divergence-of-curl identity).
func (m *Mesh) EdgeCurl() (*CSR, error) {
	if m.dim != 3 {
		return nil, &UnsupportedError{Msg: "EdgeCurl is only defined in 3D"}
	}
	if m.edgeCurl != nil && m.edgeCurlAt == m.version {
		return m.edgeCurl, nil
	}
	n := m.number()
	c := newCOO(n.nF, n.nE)

	for axis := 0; axis < 3; axis++ {
		a := (axis + 1) % 3
		b := (axis + 2) % 3
		for ownerID, owns := range n.faceOwner[axis] {
			op := m.PointerOf(ownerID)
			signs := n.faceSign[axis][ownerID]
			for k, f := range owns {
				m.assembleCurlRow(c, n, op, axis, a, b, int(signs[k]), n.faceOffset[axis]+f)
			}
		}
	}

	m.edgeCurl = c.build()
	m.edgeCurlAt = m.version
	return m.edgeCurl, nil
}

// assembleCurlRow adds the edge loop for the face of op normal to axisN on
// the given sign side, at op's own resolution: edge(a,@b=lo) +,
// edge(b,@a=hi) +, edge(a,@b=hi) -, edge(b,@a=lo) -, each entry being
// ±length/area and each edge possibly
// several finest-grid unit edges when op is coarser than a neighbor
// stacked along a or b. sign also fixes axisN's own position in the
// lookup, since axisN is one of the two "other" axes edgeIDs keys on for
// both a and b — without it a cell owning both its lo- and hi-side faces
// on axisN (e.g. any boundary cell) would wrongly look up the same edges
// for both.
func (m *Mesh) assembleCurlRow(c *coo, n *numbering, op Pointer, axisN, a, b, sign, row int) {
	nHi := sign > 0

	edgeIDs := func(axisE int, hi map[int]bool) []int {
		hi[axisN] = nHi
		other := otherTwoAxes(axisE)
		mask := 0
		for bit, d := range other {
			if hi[d] {
				mask |= 1 << uint(bit)
			}
		}
		entry := n.c2e[m.Index(op)][axisE*4+mask]
		out := make([]int, len(entry))
		for i, e := range entry {
			out[i] = n.edgeOffset[axisE] + e
		}
		return out
	}

	area := n.faceArea[axisN][row-n.faceOffset[axisN]]
	for _, id := range edgeIDs(a, map[int]bool{b: false}) {
		c.add(row, id, n.edgeLength[a][id-n.edgeOffset[a]]/area)
	}
	for _, id := range edgeIDs(b, map[int]bool{a: true}) {
		c.add(row, id, n.edgeLength[b][id-n.edgeOffset[b]]/area)
	}
	for _, id := range edgeIDs(a, map[int]bool{b: true}) {
		c.add(row, id, -n.edgeLength[a][id-n.edgeOffset[a]]/area)
	}
	for _, id := range edgeIDs(b, map[int]bool{a: false}) {
		c.add(row, id, -n.edgeLength[b][id-n.edgeOffset[b]]/area)
	}
}

// Deflation builds an averaging operator from the full uniform finest-level
// grid down onto the current (possibly adaptive) leaf set: row i of the
// result holds 1/count at every finest-level cell covered by leaf i
// (spec.md §4.6, "hanging-node deflation" — a coarse leaf deflates several
// fine values into one). Shape (NC, 2^(Levels*Dim)).
func (m *Mesh) Deflation(kind DeflationKind) (*CSR, error) {
	if kind != DeflationCC {
		return nil, &UnsupportedError{Msg: "unsupported deflation kind"}
	}
	sorted := m.SortedLeaves()
	full := 1 << uint(m.levels*m.dim)
	c := newCOO(len(sorted), full)

	for i, id := range sorted {
		p := m.PointerOf(id)
		w := m.width(p.Level)
		count := 1
		for d := 0; d < m.dim; d++ {
			count *= w
		}
		weight := 1.0 / float64(count)
		for _, off := range enumerateOffsets(m.dim, w) {
			var coords [3]uint32
			for d := 0; d < m.dim; d++ {
				coords[d] = uint32(p.I[d] + off[d])
			}
			col := int(encodeZ(m.dim, coords))
			c.add(i, col, weight)
		}
	}

	return c.build(), nil
}

// enumerateOffsets returns every lattice offset in [0,w)^dim.
func enumerateOffsets(dim, w int) [][3]int {
	total := 1
	for d := 0; d < dim; d++ {
		total *= w
	}
	out := make([][3]int, 0, total)
	var idxs [3]int
	var rec func(d int)
	rec = func(d int) {
		if d == dim {
			out = append(out, idxs)
			return
		}
		for v := 0; v < w; v++ {
			idxs[d] = v
			rec(d + 1)
		}
	}
	rec(0)
	return out
}

// quantize turns a physical coordinate into a comparable integer key,
// avoiding float equality comparisons when matching this mesh's grid points
// against the comparison TensorMesh's (spec.md §8's "regular-refinement
// equivalence" property).
func quantize(v float64) int64 {
	return int64(math.Round(v * 1e9))
}

func quantizeVec(v r3.Vector) [3]int64 {
	return [3]int64{quantize(v.X), quantize(v.Y), quantize(v.Z)}
}

// permutationFrom builds the square permutation CSR mapping this mesh's
// entities (given by `mine`, in this mesh's own enumeration order) onto a
// reference enumeration `ref` (e.g. the comparison TensorMesh's), matching
// entries by quantized physical position. Requires the two enumerations to
// contain exactly the same multiset of positions (spec.md §8's uniform-
// refinement equivalence invariant); otherwise returns an error.
func permutationFrom(mine, ref [][3]float64) (*CSR, error) {
	if len(mine) != len(ref) {
		return nil, &InvariantViolationError{Msg: "enumerations differ in size; mesh is not uniformly refined"}
	}
	index := make(map[[3]int64]int, len(ref))
	for j, p := range ref {
		index[quantizeVec(r3.Vector{X: p[0], Y: p[1], Z: p[2]})] = j
	}
	c := newCOO(len(mine), len(ref))
	for i, p := range mine {
		key := quantizeVec(r3.Vector{X: p[0], Y: p[1], Z: p[2]})
		j, ok := index[key]
		if !ok {
			return nil, &InvariantViolationError{Msg: "no matching tensor-mesh entity for this mesh's grid point"}
		}
		c.add(i, j, 1)
	}
	return c.build(), nil
}

// uniform reports whether the mesh is a single-resolution grid (every leaf
// at Levels()): the precondition PermuteCC/PermuteF/PermuteE share with the
// teacher's own "regular-refinement equivalence" comparison (spec.md §8).
func (m *Mesh) uniform() bool {
	return len(m.leaves) == 1<<uint(m.levels*m.dim)
}

// PermuteCC returns the permutation matrix carrying this mesh's cell-center
// enumeration to the comparison TensorMesh's lexicographic one. Only valid
// when the mesh is uniformly refined to Levels(); otherwise returns
// *InvariantViolationError, since the two enumerations would not even have
// matching cardinality.
func (m *Mesh) PermuteCC() (*CSR, error) {
	if !m.uniform() {
		return nil, &InvariantViolationError{Msg: "PermuteCC requires a uniformly refined mesh"}
	}
	sorted := m.SortedLeaves()
	mine := make([][3]float64, len(sorted))
	for i, id := range sorted {
		mine[i] = m.cellCenter(m.PointerOf(id))
	}
	return permutationFrom(mine, tensorCellCenters(m.h, m.levels, m.dim))
}

// PermuteF returns the permutation matrix carrying this mesh's face
// enumeration (Fx block, then Fy, then Fz) to the comparison TensorMesh's.
func (m *Mesh) PermuteF() (*CSR, error) {
	if !m.uniform() {
		return nil, &InvariantViolationError{Msg: "PermuteF requires a uniformly refined mesh"}
	}
	n := m.number()
	var mine, ref [][3]float64
	for axis := 0; axis < m.dim; axis++ {
		mine = append(mine, n.faceGrid[axis]...)
		ref = append(ref, tensorFaceCenters(m.h, m.levels, m.dim, axis)...)
	}
	return permutationFrom(mine, ref)
}

// PermuteE returns the permutation matrix carrying this mesh's edge
// enumeration (Ex block, then Ey, then Ez) to the comparison TensorMesh's.
// 3D only (the teacher source has no 2D edges either).
func (m *Mesh) PermuteE() (*CSR, error) {
	if m.dim != 3 {
		return nil, &UnsupportedError{Msg: "PermuteE is only defined in 3D"}
	}
	if !m.uniform() {
		return nil, &InvariantViolationError{Msg: "PermuteE requires a uniformly refined mesh"}
	}
	n := m.number()
	var mine, ref [][3]float64
	for axis := 0; axis < 3; axis++ {
		mine = append(mine, n.edgeGrid[axis]...)
		ref = append(ref, tensorEdgeCenters(m.h, m.levels, axis)...)
	}
	return permutationFrom(mine, ref)
}
