package treemesh

import "math/bits"

// zBits is the number of bits of per-axis lattice coordinate carried by the
// Z-order key, B in spec terms. 20 bits comfortably covers any mesh whose
// finest level has fewer than 2^20 cells per axis (spec.md recommends B=20).
const zBits = 20

// encodeZ bit-interleaves the first dim entries of coords into a Morton
// (Z-order) key: bit b of axis d lands at position b*dim+d of the key. This
// is the classic Z-order construction named in spec.md §4.1; ZIndex has no
// analog anywhere in the retrieval pack (the nearest relative, mkevac-gos2's
// CellID, interleaves along a Hilbert curve instead of a Z-order one, so its
// bit-packing scheme is used only for the composite id below, not for this
// function).
func encodeZ(dim int, coords [3]uint32) uint64 {
	var key uint64
	for b := 0; b < zBits; b++ {
		for d := 0; d < dim; d++ {
			if coords[d]&(1<<uint(b)) != 0 {
				key |= 1 << uint(b*dim+d)
			}
		}
	}
	return key
}

// decodeZ is the inverse of encodeZ.
func decodeZ(dim int, key uint64) [3]uint32 {
	var coords [3]uint32
	for b := 0; b < zBits; b++ {
		for d := 0; d < dim; d++ {
			if key&(1<<uint(b*dim+d)) != 0 {
				coords[d] |= 1 << uint(b)
			}
		}
	}
	return coords
}

// levelBitsFor returns ceil(log2(levels+1)), the number of low bits of a
// CellID reserved for the refinement level (spec.md §3, "Cell id").
func levelBitsFor(levels int) uint {
	return uint(bits.Len(uint(levels)))
}

// Index packs a Pointer into its composite CellID: the Z-order key of the
// pointer's lattice coordinates, shifted left by levelBits and OR'd with the
// level (spec.md §4.1). It is the exported form of the source's `_index`.
func (m *Mesh) Index(p Pointer) CellID {
	var coords [3]uint32
	for d := 0; d < m.dim; d++ {
		coords[d] = uint32(p.I[d])
	}
	key := encodeZ(m.dim, coords)
	return CellID(key<<m.levelBits | uint64(p.Level))
}

// PointerOf unpacks a CellID back into a Pointer. It is the exported form of
// the source's `_pointer`.
func (m *Mesh) PointerOf(id CellID) Pointer {
	level := int(uint64(id) & (1<<m.levelBits - 1))
	coords := decodeZ(m.dim, uint64(id)>>m.levelBits)
	p := Pointer{Dim: m.dim, Level: level}
	for d := 0; d < m.dim; d++ {
		p.I[d] = int(coords[d])
	}
	return p
}
