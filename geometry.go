package treemesh

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// axisExtent returns the [low, low+extent] interval a cell occupies along
// axis, computed directly from the prefix sums of h[axis] (spec.md §4.4):
// no per-cell caching, everything derives from the spacing vectors. Reusing
// r1.Interval (golang-geo's closed-interval type) gives Center/Length for
// free instead of re-deriving midpoint/width arithmetic by hand. A low
// corner on the domain's upper boundary gives an empty interval there.
func (m *Mesh) axisExtent(p Pointer, axis int) r1.Interval {
	hd := m.h[axis]
	w := m.width(p.Level)
	var lo, width float64
	for i := 0; i < p.I[axis]; i++ {
		lo += hd[i]
	}
	for i := p.I[axis]; i < p.I[axis]+w && i < len(hd); i++ {
		width += hd[i]
	}
	return r1.Interval{Lo: lo, Hi: lo + width}
}

// CellCorner returns the low-corner position of p in physical space.
func (m *Mesh) CellCorner(p Pointer) r3.Vector {
	var v r3.Vector
	x := m.axisExtent(p, 0)
	y := m.axisExtent(p, 1)
	v.X, v.Y = x.Lo, y.Lo
	if m.dim == 3 {
		v.Z = m.axisExtent(p, 2).Lo
	}
	return v
}

// CellCenter returns the geometric center of p: low-corner plus half the
// extent along each axis (spec.md §4.4).
func (m *Mesh) CellCenter(p Pointer) r3.Vector {
	var v r3.Vector
	x := m.axisExtent(p, 0)
	y := m.axisExtent(p, 1)
	v.X, v.Y = x.Center(), y.Center()
	if m.dim == 3 {
		v.Z = m.axisExtent(p, 2).Center()
	}
	return v
}

func (m *Mesh) cellCenter(p Pointer) [3]float64 {
	c := m.CellCenter(p)
	return [3]float64{c.X, c.Y, c.Z}
}

// CellExtent returns the cell's side length along each axis.
func (m *Mesh) CellExtent(p Pointer) r3.Vector {
	var v r3.Vector
	v.X = m.axisExtent(p, 0).Length()
	v.Y = m.axisExtent(p, 1).Length()
	if m.dim == 3 {
		v.Z = m.axisExtent(p, 2).Length()
	}
	return v
}

// CellVolume returns the product of the cell's per-axis extents.
func (m *Mesh) CellVolume(p Pointer) float64 {
	e := m.CellExtent(p)
	if m.dim == 2 {
		return e.X * e.Y
	}
	return e.X * e.Y * e.Z
}

// cellCorners returns the 2^dim corner positions of p, in the same
// canonical bitmask order as childOffsets.
func (m *Mesh) cellCorners(p Pointer) [][3]float64 {
	x := m.axisExtent(p, 0)
	y := m.axisExtent(p, 1)
	var z r1.Interval
	if m.dim == 3 {
		z = m.axisExtent(p, 2)
	}
	n := 1 << uint(m.dim)
	out := make([][3]float64, n)
	for mask := 0; mask < n; mask++ {
		var c [3]float64
		if mask&1 != 0 {
			c[0] = x.Hi
		} else {
			c[0] = x.Lo
		}
		if mask&2 != 0 {
			c[1] = y.Hi
		} else {
			c[1] = y.Lo
		}
		if m.dim == 3 {
			if mask&4 != 0 {
				c[2] = z.Hi
			} else {
				c[2] = z.Lo
			}
		}
		out[mask] = c
	}
	return out
}

// FaceCenter returns the center of the face of p on the given axis and
// sign (+1 or -1): the low-corner offset by the full extent on the normal
// axis (when sign>0) or 0 (when sign<0), and by half the extent on every
// other axis (spec.md §4.4).
func (m *Mesh) FaceCenter(p Pointer, axis, sign int) r3.Vector {
	center := m.CellCenter(p)
	normal := m.axisExtent(p, axis)
	coord := normal.Lo
	if sign > 0 {
		coord = normal.Hi
	}
	switch axis {
	case 0:
		center.X = coord
	case 1:
		center.Y = coord
	case 2:
		center.Z = coord
	}
	return center
}

// CellCenter2D is a 2D-mesh convenience returning the same point as
// CellCenter, projected onto r2.Point for callers that only ever work in
// the plane (spec.md's Dim==2 case).
func (m *Mesh) CellCenter2D(p Pointer) r2.Point {
	c := m.CellCenter(p)
	return r2.Point{X: c.X, Y: c.Y}
}

// FaceArea returns the area (2D: length; 3D: area) of the in-plane extents
// of the face of p normal to axis.
func (m *Mesh) FaceArea(p Pointer, axis int) float64 {
	area := 1.0
	for d := 0; d < m.dim; d++ {
		if d == axis {
			continue
		}
		area *= m.axisExtent(p, d).Length()
	}
	return area
}

// EdgeCenter returns the center of the edge of p tangent to axis, located at
// the low corner of the two other axes (the canonical minimum-corner edge,
// spec.md §4.4/§4.5). Only meaningful in 3D.
func (m *Mesh) EdgeCenter(p Pointer, axis int) r3.Vector {
	center := m.CellCenter(p)
	for d := 0; d < 3; d++ {
		if d == axis {
			continue
		}
		lo := m.axisExtent(p, d).Lo
		switch d {
		case 0:
			center.X = lo
		case 1:
			center.Y = lo
		case 2:
			center.Z = lo
		}
	}
	return center
}

// EdgeLength returns the length of the edge of p tangent to axis.
func (m *Mesh) EdgeLength(p Pointer, axis int) float64 {
	return m.axisExtent(p, axis).Length()
}
