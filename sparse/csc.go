// Package sparse provides the column-compressed sparse matrix collaborator
// consumed by the admmqp solver core. It plays the role spec.md assigns to
// "Sparse matrix": deep-copy, upper-triangle conversion, matrix-vector
// products, dense conversion and a no-op Free. The CSC fields are exported,
// and the core, scale and linsys packages also walk ColPtr/RowIdx/Val
// directly.
package sparse

import "gonum.org/v1/gonum/mat"

// CSC is a column-compressed sparse matrix: for column j, the entries
// ColPtr[j]:ColPtr[j+1] of RowIdx/Val give the row indices and values of
// the non-zeros in that column, in increasing row order.
type CSC struct {
	Rows, Cols int
	ColPtr     []int
	RowIdx     []int
	Val        []float64
}

// NewCSC builds a CSC matrix from raw column-pointer/row-index/value slices.
// It does not validate sortedness of RowIdx within a column; callers that
// build a CSC by hand are expected to respect it.
func NewCSC(rows, cols int, colPtr, rowIdx []int, val []float64) *CSC {
	return &CSC{Rows: rows, Cols: cols, ColPtr: colPtr, RowIdx: rowIdx, Val: val}
}

// Dims returns the matrix shape.
func (m *CSC) Dims() (r, c int) { return m.Rows, m.Cols }

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int { return len(m.Val) }

// Clone returns a deep copy of m.
func (m *CSC) Clone() *CSC {
	cp := &CSC{
		Rows:   m.Rows,
		Cols:   m.Cols,
		ColPtr: append([]int(nil), m.ColPtr...),
		RowIdx: append([]int(nil), m.RowIdx...),
		Val:    append([]float64(nil), m.Val...),
	}
	return cp
}

// ToUpperTriangle returns a copy of m with any entries strictly below the
// diagonal dropped, canonicalizing a symmetric matrix supplied in full or
// upper-triangular form into the upper-triangular storage the core expects
// for P (spec.md §4.1, "Canonicalizes P to upper triangle"). Lower-triangle
// entries are not mirrored into the upper triangle.
func (m *CSC) ToUpperTriangle() *CSC {
	out := &CSC{Rows: m.Rows, Cols: m.Cols, ColPtr: make([]int, m.Cols+1)}
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.RowIdx[k]
			if i <= j {
				out.RowIdx = append(out.RowIdx, i)
				out.Val = append(out.Val, m.Val[k])
			}
		}
		out.ColPtr[j+1] = len(out.Val)
	}
	return out
}

// MulVec computes dst = A*x, overwriting dst. Panics if the dimensions of
// dst or x disagree with m.
func (m *CSC) MulVec(dst, x []float64) {
	if len(x) != m.Cols {
		panic("sparse: x has wrong length")
	}
	if len(dst) != m.Rows {
		panic("sparse: dst has wrong length")
	}
	for i := range dst {
		dst[i] = 0
	}
	for j := 0; j < m.Cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			dst[m.RowIdx[k]] += m.Val[k] * xj
		}
	}
}

// MulTransVec computes dst = Aᵀ*y, overwriting dst.
func (m *CSC) MulTransVec(dst, y []float64) {
	if len(y) != m.Rows {
		panic("sparse: y has wrong length")
	}
	if len(dst) != m.Cols {
		panic("sparse: dst has wrong length")
	}
	for j := 0; j < m.Cols; j++ {
		var sum float64
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			sum += m.Val[k] * y[m.RowIdx[k]]
		}
		dst[j] = sum
	}
}

// MulSymVec computes dst = S*x where m stores only the upper triangle of a
// symmetric matrix S (the canonical form P is kept in, per spec.md §3).
// Off-diagonal entries contribute to both dst[i] and dst[j].
func (m *CSC) MulSymVec(dst, x []float64) {
	if len(x) != m.Cols || m.Cols != m.Rows {
		panic("sparse: x has wrong length or matrix not square")
	}
	if len(dst) != m.Rows {
		panic("sparse: dst has wrong length")
	}
	for i := range dst {
		dst[i] = 0
	}
	for j := 0; j < m.Cols; j++ {
		xj := x[j]
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.RowIdx[k]
			dst[i] += m.Val[k] * xj
			if i != j {
				dst[j] += m.Val[k] * x[i]
			}
		}
	}
}

// Dense converts m to a dense gonum matrix, storing only the entries m
// holds (no symmetric mirroring; see DenseSym for that).
func (m *CSC) Dense() *mat.Dense {
	d := mat.NewDense(m.Rows, m.Cols, nil)
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			d.Set(m.RowIdx[k], j, m.Val[k])
		}
	}
	return d
}

// DenseSym converts the upper-triangular storage of a symmetric matrix m to
// a dense gonum symmetric matrix.
func (m *CSC) DenseSym() *mat.SymDense {
	if m.Rows != m.Cols {
		panic("sparse: DenseSym requires a square matrix")
	}
	s := mat.NewSymDense(m.Rows, nil)
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.RowIdx[k]
			s.SetSym(i, j, m.Val[k])
		}
	}
	return s
}

// Free is a no-op under Go's garbage collector. It exists so that
// Workspace.Close can release P and A in line with spec.md's
// "Sparse matrix: ... free" collaborator contract.
func (m *CSC) Free() {}
