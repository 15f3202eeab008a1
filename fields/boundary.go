package fields

import (
	"gonum.org/v1/gonum/mat"
)

// BoundaryVector holds a two component vector at each immersed boundary
// point, e.g. the boundary force. Row 0 is the X component, row 1 is Y.
type BoundaryVector struct {
	data *mat.Dense
}

func NewBoundaryVector(numPoints int) (b *BoundaryVector) {
	b = &BoundaryVector{}
	if numPoints > 0 {
		b.data = mat.NewDense(2, numPoints, nil)
	}
	return
}

func (b *BoundaryVector) NumPoints() int {
	if b.data == nil {
		return 0
	}
	_, n := b.data.Dims()
	return n
}

func (b *BoundaryVector) At(dir Direction, k int) float64 { return b.data.At(int(dir), k) }

func (b *BoundaryVector) Set(dir Direction, k int, val float64) { b.data.Set(int(dir), k, val) }

// Component returns the values of one direction over all points. The slice
// aliases the vector's storage.
func (b *BoundaryVector) Component(dir Direction) []float64 {
	if b.data == nil {
		return nil
	}
	return b.data.RawRowView(int(dir))
}
