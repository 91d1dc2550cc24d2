package treemesh

import "sort"

// Mesh is a single-owner, mutable adaptive Cartesian mesh. It is not safe
// for concurrent mutation; concurrent reads are safe once Number has been
// called and FaceDiv and EdgeCurl have each been called once, since their
// first call fills a cache on the mesh (spec.md §5).
type Mesh struct {
	h         [][]float64 // per-axis spacings, length 1<<levels each
	levels    int         // L, the maximum refinement level
	dim       int         // 2 or 3
	levelBits uint        // bits reserved for the level in a CellID

	leaves  map[CellID]struct{}
	version int // bumped on every successful mutation

	sortedAt int // version at which sorted was built
	sorted   []CellID

	numberingAt int
	numbering   *numbering

	faceDivAt int
	faceDiv   *CSR
	edgeCurlAt int
	edgeCurl  *CSR
}

// NewMesh constructs a mesh rooted at a single cell covering the whole
// domain. h must have length 2 or 3 and every h[d] must have length
// 1<<levels with all-positive entries (spec.md §3, §6).
func NewMesh(h [][]float64, levels int) (*Mesh, error) {
	dim := len(h)
	if dim != 2 && dim != 3 {
		return nil, &InvalidSpecError{Msg: "axis count must be 2 or 3"}
	}
	if levels < 0 {
		return nil, &InvalidSpecError{Msg: "levels must be non-negative"}
	}
	want := 1 << uint(levels)
	for _, hd := range h {
		if len(hd) != want {
			return nil, &InvalidSpecError{Msg: "spacings length must be 2^levels"}
		}
		for _, v := range hd {
			if v <= 0 {
				return nil, &InvalidSpecError{Msg: "spacings must be positive"}
			}
		}
	}

	hCopy := make([][]float64, dim)
	for d := range h {
		hCopy[d] = append([]float64(nil), h[d]...)
	}

	m := &Mesh{
		h:         hCopy,
		levels:    levels,
		dim:       dim,
		levelBits: levelBitsFor(levels),
		leaves:    make(map[CellID]struct{}),
	}
	root := Pointer{Dim: dim, Level: 0}
	m.leaves[m.Index(root)] = struct{}{}
	return m, nil
}

// Dim returns the mesh dimensionality (2 or 3).
func (m *Mesh) Dim() int { return m.dim }

// Levels returns the maximum refinement level L.
func (m *Mesh) Levels() int { return m.levels }

// NC returns the number of active leaves.
func (m *Mesh) NC() int { return len(m.leaves) }

// Spacings returns a copy of the per-axis spacing vectors h passed to
// NewMesh.
func (m *Mesh) Spacings() [][]float64 {
	out := make([][]float64, len(m.h))
	for d, hd := range m.h {
		out[d] = append([]float64(nil), hd...)
	}
	return out
}

// invalidate bumps the structural version, discarding every derived cache.
// Called by every successful mutating operation (spec.md §3 "Lifecycle",
// §9 "Cache invalidation").
func (m *Mesh) invalidate() {
	m.version++
}

// SortedLeaves returns the active leaves in ascending CellID order: the
// canonical enumeration order used by Numbering and by the operator row/
// column indexing (spec.md §4.2).
func (m *Mesh) SortedLeaves() []CellID {
	if m.sorted != nil && m.sortedAt == m.version {
		return m.sorted
	}
	out := make([]CellID, 0, len(m.leaves))
	for id := range m.leaves {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	m.sorted = out
	m.sortedAt = m.version
	return out
}

// Contains reports whether cell (a CellID or Pointer) is an active leaf.
func (m *Mesh) Contains(cell any) bool {
	id, ok := m.asID(cell)
	if !ok {
		return false
	}
	_, found := m.leaves[id]
	return found
}
