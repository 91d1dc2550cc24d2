package treemesh

// CellID is the composite integer encoding of a cell: a Z-order key of its
// low-corner lattice coordinates shifted left by levelBits, OR'd with its
// refinement level (spec.md §3, §4.1).
type CellID uint64

// Pointer is the coordinate-space identity of a cell: its low-corner
// integer-lattice coordinates at the finest level, its refinement level, and
// the mesh dimensionality (2 or 3; I[2] is unused when Dim==2).
//
// Invariant: I[j] is a multiple of w(Level) == 1<<(maxLevel-Level), and
// 0 <= I[j] < 1<<maxLevel.
type Pointer struct {
	I     [3]int
	Dim   int
	Level int
}

// coords returns the dim meaningful lattice coordinates.
func (p Pointer) coords() []int { return p.I[:p.Dim] }

// withLevel returns a copy of p at a different level, coordinates unchanged.
func (p Pointer) withLevel(level int) Pointer {
	p.Level = level
	return p
}

// step returns the pointer obtained by moving the low corner by delta
// lattice units along axis, leaving level unchanged.
func (p Pointer) step(axis, delta int) Pointer {
	p.I[axis] += delta
	return p
}

// width returns the cell width in lattice units at level ℓ: w(ℓ) = 2^(L-ℓ).
func (m *Mesh) width(level int) int {
	return 1 << uint(m.levels-level)
}

// asPointer normalizes an ambiguous cell reference (CellID or Pointer) into
// a Pointer, matching the source's `_asPointer` convenience.
func (m *Mesh) asPointer(cell any) (Pointer, bool) {
	switch v := cell.(type) {
	case Pointer:
		return v, true
	case CellID:
		return m.PointerOf(v), true
	case int:
		return m.PointerOf(CellID(v)), true
	default:
		return Pointer{}, false
	}
}

// asID normalizes an ambiguous cell reference into a CellID, matching the
// source's `_asIndex` convenience.
func (m *Mesh) asID(cell any) (CellID, bool) {
	switch v := cell.(type) {
	case CellID:
		return v, true
	case int:
		return CellID(v), true
	case Pointer:
		return m.Index(v), true
	default:
		return 0, false
	}
}

// insideDomain reports whether every meaningful coordinate of p lies in
// [0, 1<<maxLevel), the source's `_isInsideMesh`.
func (m *Mesh) insideDomain(p Pointer) bool {
	limit := 1 << uint(m.levels)
	for d := 0; d < m.dim; d++ {
		if p.I[d] < 0 || p.I[d] >= limit {
			return false
		}
	}
	return true
}

// parentPointer returns p's parent: coordinates rounded down to the parent
// level's width, level decremented by one. The source's `_parentPointer`.
func (m *Mesh) parentPointer(p Pointer) Pointer {
	mod := m.width(p.Level - 1)
	parent := Pointer{Dim: p.Dim, Level: p.Level - 1}
	for d := 0; d < p.Dim; d++ {
		parent.I[d] = p.I[d] - p.I[d]%mod
	}
	return parent
}
