package treemesh

// tensorCellCenters, tensorFaceCenters and tensorEdgeCenters compute the
// lexicographic (x fastest, then y, then z) grid-point positions of a fully
// uniform tensor-product mesh at the given spacings and level count,
// without depending on the separate comparison-only tensormesh package —
// PermuteCC/PermuteF/PermuteE are part of the core's public surface and
// must not import a test-support package (spec.md §1's tensor mesh stays an
// "external collaborator"; this file only borrows its indexing convention).
// The `tensormesh` package computes the identical ordering independently,
// from its own spacing vectors, for the comparison tests in
// operators_test.go to check both against each other.

func tensorNodes(h []float64) []float64 {
	nodes := make([]float64, len(h)+1)
	for i, v := range h {
		nodes[i+1] = nodes[i] + v
	}
	return nodes
}

func tensorCenters(h []float64) []float64 {
	nodes := tensorNodes(h)
	out := make([]float64, len(h))
	for i := range h {
		out[i] = (nodes[i] + nodes[i+1]) / 2
	}
	return out
}

func tensorCellCenters(h [][]float64, levels, dim int) [][3]float64 {
	cx := tensorCenters(h[0])
	cy := tensorCenters(h[1])
	var cz []float64
	if dim == 3 {
		cz = tensorCenters(h[2])
	} else {
		cz = []float64{0}
	}

	out := make([][3]float64, 0, len(cx)*len(cy)*len(cz))
	for _, z := range cz {
		for _, y := range cy {
			for _, x := range cx {
				out = append(out, [3]float64{x, y, z})
			}
		}
	}
	return out
}

// tensorFaceCenters returns the face-center grid for faces normal to axis:
// node coordinates along axis, cell-center coordinates along every other
// axis, in the same z-slowest/x-fastest order as tensorCellCenters.
func tensorFaceCenters(h [][]float64, levels, dim, axis int) [][3]float64 {
	axes := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		if d == axis {
			axes[d] = tensorNodes(h[d])
		} else {
			axes[d] = tensorCenters(h[d])
		}
	}
	return tensorProduct(axes, dim)
}

// tensorEdgeCenters returns the edge-center grid for edges tangent to axis
// (3D only): cell-center coordinate along axis, node coordinates along the
// other two axes.
func tensorEdgeCenters(h [][]float64, levels, axis int) [][3]float64 {
	axes := make([][]float64, 3)
	for d := 0; d < 3; d++ {
		if d == axis {
			axes[d] = tensorCenters(h[d])
		} else {
			axes[d] = tensorNodes(h[d])
		}
	}
	return tensorProduct(axes, 3)
}

func tensorProduct(axes [][]float64, dim int) [][3]float64 {
	x := axes[0]
	y := axes[1]
	var z []float64
	if dim == 3 {
		z = axes[2]
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
