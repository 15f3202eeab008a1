package fields

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/ibpm/grid"
)

var ErrShapeMismatch = errors.New("shape mismatch")

// CheckShape panics with ErrShapeMismatch unless a and b have the same nx, ny
// and dx.
func CheckShape(op string, a, b *grid.Grid) {
	if !a.SameShape(b) {
		panic(fmt.Errorf("%w: %s between %s and %s", ErrShapeMismatch, op, a, b))
	}
}

/*
	Scalar is a node centered field, one value per grid node, (nx+1) x (ny+1).
	Storage is a row major gonum Dense with row index i and column index j.

	A Scalar owns its buffer. Assigning one Scalar variable to another shares
	the pointer; use Copy or Assign for an independent buffer.
*/
type Scalar struct {
	grid *grid.Grid
	data *mat.Dense
}

func NewScalar(g *grid.Grid) (f *Scalar) {
	f = &Scalar{
		grid: g,
		data: mat.NewDense(g.Nx()+1, g.Ny()+1, nil),
	}
	return
}

func (f *Scalar) Grid() *grid.Grid { return f.grid }
func (f *Scalar) Nx() int          { return f.grid.Nx() }
func (f *Scalar) Ny() int          { return f.grid.Ny() }
func (f *Scalar) Dx() float64      { return f.grid.Dx() }

// Dense exposes the backing matrix, useful for gonum formatting and norms.
func (f *Scalar) Dense() *mat.Dense { return f.data }

// Data is the raw row major buffer, index i*(ny+1)+j.
func (f *Scalar) Data() []float64 { return f.data.RawMatrix().Data }

func (f *Scalar) At(i, j int) float64 { return f.data.At(i, j) }

func (f *Scalar) Set(i, j int, val float64) { f.data.Set(i, j, val) }

// Ptr returns a mutable reference to the value at node (i,j).
func (f *Scalar) Ptr(i, j int) *float64 {
	raw := f.data.RawMatrix()
	return &raw.Data[i*raw.Stride+j]
}

func (f *Scalar) Copy() (R *Scalar) {
	R = NewScalar(f.grid)
	R.data.Copy(f.data)
	return
}

// Assign copies the values of g into f. Both must have the same shape.
func (f *Scalar) Assign(g *Scalar) *Scalar {
	CheckShape("Scalar.Assign", f.grid, g.grid)
	f.data.Copy(g.data)
	return f
}

func (f *Scalar) Fill(a float64) *Scalar {
	d := f.Data()
	for i := range d {
		d[i] = a
	}
	return f
}

// Chainable in place methods, each changes the receiver
func (f *Scalar) AddInPlace(g *Scalar) *Scalar {
	CheckShape("Scalar.AddInPlace", f.grid, g.grid)
	floats.Add(f.Data(), g.Data())
	return f
}

func (f *Scalar) SubtractInPlace(g *Scalar) *Scalar {
	CheckShape("Scalar.SubtractInPlace", f.grid, g.grid)
	floats.Sub(f.Data(), g.Data())
	return f
}

func (f *Scalar) MultiplyInPlace(g *Scalar) *Scalar {
	CheckShape("Scalar.MultiplyInPlace", f.grid, g.grid)
	floats.Mul(f.Data(), g.Data())
	return f
}

func (f *Scalar) DivideInPlace(g *Scalar) *Scalar {
	CheckShape("Scalar.DivideInPlace", f.grid, g.grid)
	floats.Div(f.Data(), g.Data())
	return f
}

func (f *Scalar) AddConstInPlace(a float64) *Scalar {
	floats.AddConst(a, f.Data())
	return f
}

func (f *Scalar) SubtractConstInPlace(a float64) *Scalar {
	floats.AddConst(-a, f.Data())
	return f
}

func (f *Scalar) Scale(a float64) *Scalar {
	floats.Scale(a, f.Data())
	return f
}

func (f *Scalar) DivideConstInPlace(a float64) *Scalar {
	d := f.Data()
	for i := range d {
		d[i] /= a
	}
	return f
}

// Copying methods, none of these change the receiver
func (f *Scalar) Add(g *Scalar) *Scalar           { return f.Copy().AddInPlace(g) }
func (f *Scalar) Subtract(g *Scalar) *Scalar      { return f.Copy().SubtractInPlace(g) }
func (f *Scalar) Divide(g *Scalar) *Scalar        { return f.Copy().DivideInPlace(g) }
func (f *Scalar) AddConst(a float64) *Scalar      { return f.Copy().AddConstInPlace(a) }
func (f *Scalar) SubtractConst(a float64) *Scalar { return f.Copy().SubtractConstInPlace(a) }
func (f *Scalar) Scaled(a float64) *Scalar        { return f.Copy().Scale(a) }
func (f *Scalar) DivideConst(a float64) *Scalar   { return f.Copy().DivideConstInPlace(a) }
func (f *Scalar) Negated() *Scalar                { return f.Copy().Scale(-1) }

func (f *Scalar) ElementwiseMultiply(g *Scalar) *Scalar {
	return f.Copy().MultiplyInPlace(g)
}

// ConstMinus returns a - f
func (f *Scalar) ConstMinus(a float64) *Scalar {
	return f.Negated().AddConstInPlace(a)
}

// ConstDivide returns a / f
func (f *Scalar) ConstDivide(a float64) (R *Scalar) {
	R = NewScalar(f.grid)
	var (
		d  = R.Data()
		fd = f.Data()
	)
	for i := range d {
		d[i] = a / fd[i]
	}
	return
}

func (f *Scalar) String() string {
	return fmt.Sprintf("%v", mat.Formatted(f.data, mat.Squeeze()))
}
