package fields

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/ibpm/grid"
)

type Direction uint8

const (
	X Direction = iota
	Y
)

func (d Direction) String() string {
	switch d {
	case X:
		return "X"
	case Y:
		return "Y"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

/*
	Flux holds the normal flux of a vector field through the cell edges.
		X component: vertical edges, (nx+1) x ny, index (i, j) for edge (i, j+1/2)
		Y component: horizontal edges, nx x (ny+1), index (i, j) for edge (i+1/2, j)
	Velocity is flux divided by the edge length dx.
*/
type Flux struct {
	grid *grid.Grid
	comp [2]*mat.Dense
}

func NewFlux(g *grid.Grid) (q *Flux) {
	var (
		nx, ny = g.Nx(), g.Ny()
	)
	q = &Flux{
		grid: g,
		comp: [2]*mat.Dense{
			mat.NewDense(nx+1, ny, nil),
			mat.NewDense(nx, ny+1, nil),
		},
	}
	return
}

// UniformFlux returns the flux of a uniform velocity of magnitude mag,
// directed at angle radians from the x axis.
func UniformFlux(g *grid.Grid, mag, angle float64) (q *Flux) {
	var (
		dx = g.Dx()
	)
	q = NewFlux(g)
	floats.AddConst(mag*math.Cos(angle)*dx, q.Data(X))
	floats.AddConst(mag*math.Sin(angle)*dx, q.Data(Y))
	return
}

func (q *Flux) Grid() *grid.Grid { return q.grid }
func (q *Flux) Nx() int          { return q.grid.Nx() }
func (q *Flux) Ny() int          { return q.grid.Ny() }
func (q *Flux) Dx() float64      { return q.grid.Dx() }

func (q *Flux) Component(dir Direction) *mat.Dense { return q.comp[dir] }

// Data is the raw row major buffer of one component.
func (q *Flux) Data(dir Direction) []float64 { return q.comp[dir].RawMatrix().Data }

func (q *Flux) At(dir Direction, i, j int) float64 { return q.comp[dir].At(i, j) }

func (q *Flux) Set(dir Direction, i, j int, val float64) { q.comp[dir].Set(i, j, val) }

// Ptr returns a mutable reference to the flux value of component dir at (i,j).
func (q *Flux) Ptr(dir Direction, i, j int) *float64 {
	raw := q.comp[dir].RawMatrix()
	return &raw.Data[i*raw.Stride+j]
}

func (q *Flux) Copy() (R *Flux) {
	R = NewFlux(q.grid)
	for dir := X; dir <= Y; dir++ {
		R.comp[dir].Copy(q.comp[dir])
	}
	return
}

func (q *Flux) Assign(p *Flux) *Flux {
	CheckShape("Flux.Assign", q.grid, p.grid)
	for dir := X; dir <= Y; dir++ {
		q.comp[dir].Copy(p.comp[dir])
	}
	return q
}

func (q *Flux) Fill(a float64) *Flux {
	for dir := X; dir <= Y; dir++ {
		d := q.Data(dir)
		for i := range d {
			d[i] = a
		}
	}
	return q
}

func (q *Flux) binary(op string, p *Flux, fn func(dst, s []float64)) *Flux {
	CheckShape(op, q.grid, p.grid)
	for dir := X; dir <= Y; dir++ {
		fn(q.Data(dir), p.Data(dir))
	}
	return q
}

func (q *Flux) unary(fn func(d []float64)) *Flux {
	for dir := X; dir <= Y; dir++ {
		fn(q.Data(dir))
	}
	return q
}

// Chainable in place methods, each changes the receiver
func (q *Flux) AddInPlace(p *Flux) *Flux      { return q.binary("Flux.AddInPlace", p, floats.Add) }
func (q *Flux) SubtractInPlace(p *Flux) *Flux { return q.binary("Flux.SubtractInPlace", p, floats.Sub) }
func (q *Flux) MultiplyInPlace(p *Flux) *Flux { return q.binary("Flux.MultiplyInPlace", p, floats.Mul) }
func (q *Flux) DivideInPlace(p *Flux) *Flux   { return q.binary("Flux.DivideInPlace", p, floats.Div) }

func (q *Flux) AddConstInPlace(a float64) *Flux {
	return q.unary(func(d []float64) { floats.AddConst(a, d) })
}

func (q *Flux) SubtractConstInPlace(a float64) *Flux {
	return q.unary(func(d []float64) { floats.AddConst(-a, d) })
}

func (q *Flux) Scale(a float64) *Flux {
	return q.unary(func(d []float64) { floats.Scale(a, d) })
}

func (q *Flux) DivideConstInPlace(a float64) *Flux {
	return q.unary(func(d []float64) {
		for i := range d {
			d[i] /= a
		}
	})
}

// Copying methods, none of these change the receiver
func (q *Flux) Add(p *Flux) *Flux                 { return q.Copy().AddInPlace(p) }
func (q *Flux) Subtract(p *Flux) *Flux            { return q.Copy().SubtractInPlace(p) }
func (q *Flux) ElementwiseMultiply(p *Flux) *Flux { return q.Copy().MultiplyInPlace(p) }
func (q *Flux) Divide(p *Flux) *Flux              { return q.Copy().DivideInPlace(p) }
func (q *Flux) AddConst(a float64) *Flux          { return q.Copy().AddConstInPlace(a) }
func (q *Flux) SubtractConst(a float64) *Flux     { return q.Copy().SubtractConstInPlace(a) }
func (q *Flux) Scaled(a float64) *Flux            { return q.Copy().Scale(a) }
func (q *Flux) DivideConst(a float64) *Flux       { return q.Copy().DivideConstInPlace(a) }
func (q *Flux) Negated() *Flux                    { return q.Copy().Scale(-1) }

// ConstMinus returns a - q
func (q *Flux) ConstMinus(a float64) *Flux {
	return q.Negated().AddConstInPlace(a)
}

// ConstDivide returns a / q
func (q *Flux) ConstDivide(a float64) (R *Flux) {
	R = NewFlux(q.grid)
	for dir := X; dir <= Y; dir++ {
		var (
			d  = R.Data(dir)
			qd = q.Data(dir)
		)
		for i := range d {
			d[i] = a / qd[i]
		}
	}
	return
}

func (q *Flux) String() string {
	return fmt.Sprintf("X = \n%v\nY = \n%v\n",
		mat.Formatted(q.comp[X], mat.Squeeze()), mat.Formatted(q.comp[Y], mat.Squeeze()))
}
