package treemesh

// childOffsets returns the 2^dim lattice-unit offsets of a cell's children,
// in canonical order: offset d is halfWidth when bit d of the enumeration
// index is set, else 0. This single bitmask rule produces the Python
// source's hard-coded 2D ordering ([0,0],[h,0],[0,h],[h,h]) and its 3D
// extension ([0,0,0],[h,0,0],[0,h,0],[h,h,0],[0,0,h],...) without a
// dimension-specific branch (Open Question #3 in spec.md §9).
func childOffsets(dim, halfWidth int) [][3]int {
	n := 1 << uint(dim)
	out := make([][3]int, n)
	for mask := 0; mask < n; mask++ {
		for d := 0; d < dim; d++ {
			if mask&(1<<uint(d)) != 0 {
				out[mask][d] = halfWidth
			}
		}
	}
	return out
}

// RefineCell splits cell into its 2^dim children at the next level. cell
// must be an active leaf at level < Levels(). On success the children
// replace cell in the active-leaf set and the structural version is bumped;
// on failure the mesh is left unchanged (spec.md §4.2, §7).
func (m *Mesh) RefineCell(cell any) error {
	p, ok := m.asPointer(cell)
	if !ok {
		return &InvalidSpecError{Msg: "cell must be a CellID or Pointer"}
	}
	id := m.Index(p)
	if _, found := m.leaves[id]; !found {
		return &OutOfBoundsError{Cell: id, Msg: "cell is not an active leaf"}
	}
	if p.Level >= m.levels {
		return &OutOfBoundsError{Cell: id, Msg: "cell is already at the maximum level"}
	}

	half := m.width(p.Level + 1)
	children := make([]CellID, 0, 1<<uint(m.dim))
	for _, off := range childOffsets(m.dim, half) {
		child := p.withLevel(p.Level + 1)
		for d := 0; d < m.dim; d++ {
			child.I[d] += off[d]
		}
		children = append(children, m.Index(child))
	}

	delete(m.leaves, id)
	for _, c := range children {
		m.leaves[c] = struct{}{}
	}
	m.invalidate()
	return nil
}

// CoarsenCell merges cell's parent's 2^dim children (cell among them) back
// into the single parent cell. cell must be an active leaf at level >= 1,
// and every sibling at the same level must also be an active leaf; otherwise
// CoarsenCell fails and leaves the mesh unchanged (spec.md §4.2, §7).
func (m *Mesh) CoarsenCell(cell any) error {
	p, ok := m.asPointer(cell)
	if !ok {
		return &InvalidSpecError{Msg: "cell must be a CellID or Pointer"}
	}
	id := m.Index(p)
	if _, found := m.leaves[id]; !found {
		return &OutOfBoundsError{Cell: id, Msg: "cell is not an active leaf"}
	}
	if p.Level < 1 {
		return &OutOfBoundsError{Cell: id, Msg: "cell is already at the root level"}
	}

	parent := m.parentPointer(p)
	half := m.width(p.Level)
	siblings := make([]CellID, 0, 1<<uint(m.dim))
	for _, off := range childOffsets(m.dim, half) {
		sib := parent.withLevel(p.Level)
		for d := 0; d < m.dim; d++ {
			sib.I[d] += off[d]
		}
		sibID := m.Index(sib)
		if _, found := m.leaves[sibID]; !found {
			return &OutOfBoundsError{Cell: id, Msg: "sibling leaves are not all present"}
		}
		siblings = append(siblings, sibID)
	}

	for _, s := range siblings {
		delete(m.leaves, s)
	}
	m.leaves[m.Index(parent)] = struct{}{}
	m.invalidate()
	return nil
}

// InsertCells admits a batch of precomputed leaf ids directly, replacing the
// active-leaf set, after validating that they tile the domain exactly
// (spec.md §6's insert_cells). It is all-or-nothing: a failing validation
// leaves the mesh unchanged.
func (m *Mesh) InsertCells(ids []CellID) error {
	leaves := make(map[CellID]struct{}, len(ids))
	var covered int64
	for _, id := range ids {
		p := m.PointerOf(id)
		if !m.insideDomain(p) || p.Level < 0 || p.Level > m.levels {
			return &InvalidSpecError{Msg: "cell id is out of range"}
		}
		if _, dup := leaves[id]; dup {
			return &InvalidSpecError{Msg: "duplicate cell id"}
		}
		leaves[id] = struct{}{}
		for d := 0; d < m.dim; d++ {
			if p.I[d]%m.width(p.Level) != 0 {
				return &InvalidSpecError{Msg: "cell id is not level-aligned"}
			}
		}
		w := int64(m.width(p.Level))
		cellVol := int64(1)
		for d := 0; d < m.dim; d++ {
			cellVol *= w
		}
		covered += cellVol
	}
	full := int64(1) << uint(m.levels*m.dim)
	if covered != full {
		return &InvalidSpecError{Msg: "cell ids do not tile the domain"}
	}
	for id := range leaves {
		q := m.PointerOf(id)
		for q.Level > 0 {
			q = m.parentPointer(q)
			if _, nested := leaves[m.Index(q)]; nested {
				return &InvalidSpecError{Msg: "cell ids overlap"}
			}
		}
	}

	m.leaves = leaves
	m.invalidate()
	return nil
}

// CellView is the light, read-only handle to a leaf cell passed to a
// Refine predicate and returned by Mesh.Cell: its geometric Center, the
// positions of its Nodes (corners), and its Level (spec.md §6).
type CellView struct {
	mesh   *Mesh
	ID     CellID
	Level  int
	Center [3]float64
	Nodes  [][3]float64
}

func (m *Mesh) cellView(id CellID) *CellView {
	p := m.PointerOf(id)
	return &CellView{
		mesh:   m,
		ID:     id,
		Level:  p.Level,
		Center: m.cellCenter(p),
		Nodes:  m.cellCorners(p),
	}
}

// Refine evaluates predicate at each current leaf and refines it when the
// returned target level exceeds the cell's current level; if recursive, the
// process repeats on just the newly created children until none of them
// request further refinement (spec.md §4.2). Returns the ids of every cell
// created during the call.
func (m *Mesh) Refine(predicate func(*CellView) int, recursive bool) []CellID {
	return m.refineCells(predicate, recursive, m.SortedLeaves())
}

func (m *Mesh) refineCells(predicate func(*CellView) int, recursive bool, cells []CellID) []CellID {
	var recurse []CellID
	for _, id := range cells {
		view := m.cellView(id)
		if predicate(view) <= view.Level {
			continue
		}
		if err := m.RefineCell(id); err != nil {
			continue
		}
		p := m.PointerOf(id)
		w := m.width(p.Level + 1)
		for _, off := range childOffsets(m.dim, w) {
			child := p.withLevel(p.Level + 1)
			for d := 0; d < m.dim; d++ {
				child.I[d] += off[d]
			}
			recurse = append(recurse, m.Index(child))
		}
	}
	if recursive && len(recurse) > 0 {
		recurse = append(recurse, m.refineCells(predicate, true, recurse)...)
	}
	return recurse
}

// RefineBool is a compatibility shim for the legacy boolean predicate form
// function(center) > cell.level mentioned in spec.md §4.2: it refines any
// leaf for which predicate returns true, one level at a time.
func (m *Mesh) RefineBool(predicate func(*CellView) bool, recursive bool) []CellID {
	return m.Refine(func(v *CellView) int {
		if predicate(v) {
			return v.Level + 1
		}
		return v.Level
	}, recursive)
}
