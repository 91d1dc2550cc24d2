package treemesh

// numbering is the cached result of Number(): the face (and, in 3D, edge)
// enumeration and the cell-to-face/edge incidence tables that FaceDiv and
// EdgeCurl assemble from (spec.md §4.5, grounded on PointerTree.py's
// number()/_cellN/_cellH and generalized from its hard-coded X/Y-only
// processCell to a per-axis loop that also runs for Z in 3D).
type numbering struct {
	nC int

	// faceGrid[axis] holds the physical centers of every face normal to
	// axis, in the order faces were first registered.
	faceGrid [3][][3]float64
	faceArea [3][]float64
	nFace    [3]int
	// faceOffset[axis] is the column offset of axis's faces in the global
	// face enumeration used by FaceDiv (Fx block, then Fy, then Fz).
	faceOffset [3]int
	nF         int
	hanging    [3][]int
	// faceOwner[axis][id] lists the faces (normal to axis) whose geometry
	// was registered at cell id's own resolution — the cell EdgeCurl reads
	// the bounding edges from. A face id appears under exactly one owner.
	faceOwner [3]map[CellID][]int
	// faceSign[axis][id][k] is the +1/-1 normal-axis side of faceOwner's
	// matching entry: EdgeCurl needs it to pick the owner's low or high
	// corner along axis when it isn't also one of the loop's two in-plane
	// axes a, b.
	faceSign [3]map[CellID][]int8

	// c2f[id][2*axis+0] is the minus-side face ids touching cell id on
	// axis; [2*axis+1] is the plus-side (possibly several, when the
	// neighbor there is smaller).
	c2f map[CellID][6][]int

	// Edge bookkeeping; populated only when dim == 3 (spec.md §4.5's 3D
	// extension, which has no original_source precedent — see DESIGN.md
	// Open Question on edge hanging).
	edgeGrid   [3][][3]float64
	edgeLength [3][]float64
	nEdge      [3]int
	edgeOffset [3]int
	nE         int
	c2e        map[CellID][12][]int

	vol []float64
}

// number computes (or returns the cached) face/edge enumeration and
// incidence tables for the mesh's current leaf set. The result is cached by
// structural version, same as SortedLeaves (spec.md §4.5, §9). The public
// entry point is Number (accessors.go).
func (m *Mesh) number() *numbering {
	if m.numbering != nil && m.numberingAt == m.version {
		return m.numbering
	}

	sorted := m.SortedLeaves()
	n := &numbering{
		nC:  len(sorted),
		c2f: make(map[CellID][6][]int, len(sorted)),
		vol: make([]float64, len(sorted)),
	}
	if m.dim == 3 {
		n.c2e = make(map[CellID][12][]int, len(sorted))
	}

	for axis := 0; axis < m.dim; axis++ {
		n.faceOwner[axis] = make(map[CellID][]int)
		n.faceSign[axis] = make(map[CellID][]int8)
		m.numberAxisFaces(n, sorted, axis)
	}

	offset := 0
	for axis := 0; axis < m.dim; axis++ {
		n.faceOffset[axis] = offset
		offset += n.nFace[axis]
	}
	n.nF = offset

	if m.dim == 3 {
		for axis := 0; axis < 3; axis++ {
			m.numberAxisEdges(n, sorted, axis)
		}
		eoffset := 0
		for axis := 0; axis < 3; axis++ {
			n.edgeOffset[axis] = eoffset
			eoffset += n.nEdge[axis]
		}
		n.nE = eoffset
	}

	for i, id := range sorted {
		n.vol[i] = m.CellVolume(m.PointerOf(id))
	}

	m.numbering = n
	m.numberingAt = m.version
	return n
}

func (n *numbering) appendC2F(id CellID, slot, face int) {
	e := n.c2f[id]
	e[slot] = append(e[slot], face)
	n.c2f[id] = e
}

func (n *numbering) appendC2E(id CellID, slot, edge int) {
	e := n.c2e[id]
	e[slot] = append(e[slot], edge)
	n.c2e[id] = e
}

// numberAxisFaces assigns face ids to every face normal to axis, walking
// each leaf's minus side (only at the domain boundary) and plus side
// (always), deciding same/bigger/smaller from NextCell exactly as
// PointerTree.py's processCell does for its two hard-coded directions.
func (m *Mesh) numberAxisFaces(n *numbering, sorted []CellID, axis int) {
	addFace := func(p Pointer, positive bool) int {
		sign := -1
		if positive {
			sign = 1
		}
		c := m.FaceCenter(p, axis, sign)
		n.faceGrid[axis] = append(n.faceGrid[axis], [3]float64{c.X, c.Y, c.Z})
		n.faceArea[axis] = append(n.faceArea[axis], m.FaceArea(p, axis))
		id := len(n.faceGrid[axis]) - 1
		n.nFace[axis] = len(n.faceGrid[axis])
		owner := m.Index(p)
		n.faceOwner[axis][owner] = append(n.faceOwner[axis][owner], id)
		n.faceSign[axis][owner] = append(n.faceSign[axis][owner], int8(sign))
		return id
	}

	minusSlot, plusSlot := 2*axis, 2*axis+1

	for _, id := range sorted {
		p := m.PointerOf(id)

		if m.NextCell(p, axis, -1).Kind == NeighborNone {
			face := addFace(p, false)
			n.appendC2F(id, minusSlot, face)
		}

		next := m.NextCell(p, axis, 1)
		switch next.Kind {
		case NeighborNone:
			face := addFace(p, true)
			n.appendC2F(id, plusSlot, face)
		case NeighborSame:
			face := addFace(p, true)
			n.appendC2F(id, plusSlot, face)
			nq := m.PointerOf(next.ID)
			n.appendC2F(next.ID, minusSlot, face)
			if nq.Level != p.Level {
				n.hanging[axis] = append(n.hanging[axis], face)
			}
		case NeighborSmaller:
			ids := next.IDs()
			faces := make([]int, 0, len(ids))
			for _, sid := range ids {
				sp := m.PointerOf(sid)
				face := addFace(sp, false)
				n.appendC2F(sid, minusSlot, face)
				faces = append(faces, face)
			}
			for _, face := range faces {
				n.appendC2F(id, plusSlot, face)
				n.hanging[axis] = append(n.hanging[axis], face)
			}
		}
	}
}

// numberAxisEdges assigns edge ids to every edge tangent to axis. Each leaf
// registers its own tangent-axis edges decomposed into unit segments of the
// finest grid rather than one edge per leaf corner: Pointer coordinates are
// already finest-grid lattice positions (pointer.go), so a leaf of width w
// at a hanging transition produces the same w unit segments, keyed on
// absolute finest coordinates, that a finer neighbor stacked along axis
// would also produce for its matching portion. That shared keying is what
// lets EdgeCurl and FaceDiv reference the exact same edges across a
// resolution transition along an edge's own tangent direction, rather than
// each side inventing its own differently-sized edge for the same physical
// segment (no original_source precedent exists for edges or curl — the
// Python source is 2D-only; see DESIGN.md's Open Question on edge
// numbering for the uniform-mesh case, where w==1 and this reduces to one
// edge per corner exactly as before).
func (m *Mesh) numberAxisEdges(n *numbering, sorted []CellID, axis int) {
	type edgeKey struct{ a, b, t int }
	seen := make(map[edgeKey]int)

	other := otherTwoAxes(axis)
	slotBase := axis * 4

	for _, id := range sorted {
		p := m.PointerOf(id)
		w := m.width(p.Level)
		for mask := 0; mask < 4; mask++ {
			corner := p
			if mask&1 != 0 {
				corner.I[other[0]] += w
			}
			if mask&2 != 0 {
				corner.I[other[1]] += w
			}
			for t := 0; t < w; t++ {
				unit := corner
				unit.Level = m.levels
				unit.I[axis] = p.I[axis] + t

				key := edgeKey{corner.I[other[0]], corner.I[other[1]], unit.I[axis]}
				idx, ok := seen[key]
				if !ok {
					c := m.EdgeCenter(unit, axis)
					n.edgeGrid[axis] = append(n.edgeGrid[axis], [3]float64{c.X, c.Y, c.Z})
					n.edgeLength[axis] = append(n.edgeLength[axis], m.EdgeLength(unit, axis))
					idx = len(n.edgeGrid[axis]) - 1
					n.nEdge[axis] = len(n.edgeGrid[axis])
					seen[key] = idx
				}
				n.appendC2E(id, slotBase+mask, idx)
			}
		}
	}
}
