package grid

import (
	"errors"
	"fmt"
)

var ErrInvalidGrid = errors.New("invalid grid")

/*
	Grid describes a uniform staggered (MAC) discretization of a rectangle.
	Nodes are indexed (i,j) with i in [0,nx], j in [0,ny]. Edge fluxes live
	half a cell away from the nodes: X fluxes on vertical edges (i, j+1/2),
	Y fluxes on horizontal edges (i+1/2, j).

	A Grid is immutable once constructed; every field holds a pointer to the
	Grid it was built on, so the Grid must outlive those fields.
*/
type Grid struct {
	nx, ny           int
	dx               float64
	xOffset, yOffset float64
}

// NewGrid builds a grid of nx by ny cells spanning length in the x direction,
// with the lower left corner at (xOffset, yOffset).
func NewGrid(nx, ny int, length, xOffset, yOffset float64) (g *Grid) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("%w: nx, ny = %d, %d, must be at least 1", ErrInvalidGrid, nx, ny))
	}
	if !(length > 0) {
		panic(fmt.Errorf("%w: length = %v, must be positive", ErrInvalidGrid, length))
	}
	g = &Grid{
		nx:      nx,
		ny:      ny,
		dx:      length / float64(nx),
		xOffset: xOffset,
		yOffset: yOffset,
	}
	return
}

func (g *Grid) Nx() int           { return g.nx }
func (g *Grid) Ny() int           { return g.ny }
func (g *Grid) Dx() float64       { return g.dx }
func (g *Grid) XOffset() float64  { return g.xOffset }
func (g *Grid) YOffset() float64  { return g.yOffset }
func (g *Grid) Length() float64   { return g.dx * float64(g.nx) }
func (g *Grid) Height() float64   { return g.dx * float64(g.ny) }
func (g *Grid) Area() float64     { return g.Length() * g.Height() }
func (g *Grid) X(i int) float64   { return g.xOffset + float64(i)*g.dx }
func (g *Grid) Y(j int) float64   { return g.yOffset + float64(j)*g.dx }
func (g *Grid) NumInterior() int  { return (g.nx - 1) * (g.ny - 1) }
func (g *Grid) HasInterior() bool { return g.nx > 1 && g.ny > 1 }

// SameShape reports whether fields on g and o can be combined: equal cell
// counts and spacing. Offsets are not compared, no operator uses them.
func (g *Grid) SameShape(o *Grid) bool {
	return g == o || (g.nx == o.nx && g.ny == o.ny && g.dx == o.dx)
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid[nx=%d, ny=%d, dx=%8.5f, offset=(%8.5f,%8.5f)]",
		g.nx, g.ny, g.dx, g.xOffset, g.yOffset)
}
