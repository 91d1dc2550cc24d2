package treemesh

import "sort"

// CSR is a compressed-sparse-row matrix, the storage format used by every
// discrete operator the mesh assembles (spec.md §4.6). It is read-only once
// built: operators are assembled from COO triplets and compressed exactly
// once (grounded on katalvlaran-lvlath's matrix/incidence.go, which builds
// an incidence matrix from triplets the same way, and on
// MetaCubeX-bart's internal/sparse row/index layout).
type CSR struct {
	Rows, Cols int
	RowPtr     []int
	ColIdx     []int
	Data       []float64
}

// Dims returns (Rows, Cols).
func (c *CSR) Dims() (int, int) { return c.Rows, c.Cols }

// NNZ returns the number of stored (possibly summed-duplicate) entries.
func (c *CSR) NNZ() int { return len(c.Data) }

// triplet is one COO entry accumulated before compression.
type triplet struct {
	row, col int
	val      float64
}

// coo accumulates triplets and compresses them into a CSR, summing
// duplicate (row, col) entries (spec.md §4.6's assembly convention, matching
// how an incidence matrix or divergence stencil may touch the same cell
// twice, e.g. a hanging face counted from two smaller neighbors).
type coo struct {
	rows, cols int
	entries    []triplet
}

func newCOO(rows, cols int) *coo {
	return &coo{rows: rows, cols: cols}
}

func (c *coo) add(row, col int, val float64) {
	c.entries = append(c.entries, triplet{row, col, val})
}

func (c *coo) build() *CSR {
	sort.Slice(c.entries, func(i, j int) bool {
		if c.entries[i].row != c.entries[j].row {
			return c.entries[i].row < c.entries[j].row
		}
		return c.entries[i].col < c.entries[j].col
	})

	rowPtr := make([]int, c.rows+1)
	colIdx := make([]int, 0, len(c.entries))
	data := make([]float64, 0, len(c.entries))

	i := 0
	for row := 0; row < c.rows; row++ {
		rowPtr[row] = len(colIdx)
		for i < len(c.entries) && c.entries[i].row == row {
			col := c.entries[i].col
			val := c.entries[i].val
			j := i + 1
			for j < len(c.entries) && c.entries[j].row == row && c.entries[j].col == col {
				val += c.entries[j].val
				j++
			}
			colIdx = append(colIdx, col)
			data = append(data, val)
			i = j
		}
	}
	rowPtr[c.rows] = len(colIdx)

	return &CSR{Rows: c.rows, Cols: c.cols, RowPtr: rowPtr, ColIdx: colIdx, Data: data}
}

// MulVec computes C*x.
func (c *CSR) MulVec(x []float64) []float64 {
	out := make([]float64, c.Rows)
	for row := 0; row < c.Rows; row++ {
		var sum float64
		for k := c.RowPtr[row]; k < c.RowPtr[row+1]; k++ {
			sum += c.Data[k] * x[c.ColIdx[k]]
		}
		out[row] = sum
	}
	return out
}

// Dense materializes the matrix; intended for small meshes and tests only.
func (c *CSR) Dense() [][]float64 {
	out := make([][]float64, c.Rows)
	for row := 0; row < c.Rows; row++ {
		out[row] = make([]float64, c.Cols)
		for k := c.RowPtr[row]; k < c.RowPtr[row+1]; k++ {
			out[row][c.ColIdx[k]] = c.Data[k]
		}
	}
	return out
}
