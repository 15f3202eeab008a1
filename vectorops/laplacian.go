package vectorops

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/grid"
)

// LaplacianInto sets L to the five point Laplacian of f at interior nodes,
// zero on the boundary. Curl(CurlScalar(f)) equals -Laplacian(f).
func LaplacianInto(f, L *fields.Scalar) {
	fields.CheckShape("Laplacian", f.Grid(), L.Grid())
	var (
		nx, ny         = f.Nx(), f.Ny()
		byDeltaSquared = 1. / (f.Dx() * f.Dx())
	)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			L.Set(i, j, (f.At(i+1, j)+f.At(i-1, j)+f.At(i, j+1)+f.At(i, j-1)-4*f.At(i, j))*
				byDeltaSquared)
		}
	}
	for j := 0; j <= ny; j++ {
		L.Set(0, j, 0)
		L.Set(nx, j, 0)
	}
	for i := 0; i <= nx; i++ {
		L.Set(i, 0, 0)
		L.Set(i, ny, 0)
	}
}

func Laplacian(f *fields.Scalar) (L *fields.Scalar) {
	L = fields.NewScalar(f.Grid())
	LaplacianInto(f, L)
	return
}

// Divergence returns the net outflow of q from each cell, an nx x ny matrix
// indexed by the cell's lower left node. The result is in flux units, not
// divided by the cell area. Divergence(CurlScalar(f)) is identically zero.
func Divergence(q *fields.Flux) (D *mat.Dense) {
	var (
		nx, ny = q.Nx(), q.Ny()
	)
	D = mat.NewDense(nx, ny, nil)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			D.Set(i, j, q.At(X, i+1, j)-q.At(X, i, j)+q.At(Y, i, j+1)-q.At(Y, i, j))
		}
	}
	return
}

// LaplacianMatrix assembles the five point Laplacian acting on the interior
// nodes with homogeneous Dirichlet boundaries. Unknown (i,j) has index
// InteriorIndex(g, i, j).
func LaplacianMatrix(g *grid.Grid) (A *sparse.CSR) {
	byDeltaSquared := 1. / (g.Dx() * g.Dx())
	requireInterior("LaplacianMatrix", g)
	return fivePointMatrix(g, -4*byDeltaSquared, byDeltaSquared)
}

// HelmholtzMatrix assembles 1 - alpha*L with L the matrix of LaplacianMatrix.
func HelmholtzMatrix(g *grid.Grid, alpha float64) (A *sparse.CSR) {
	byDeltaSquared := 1. / (g.Dx() * g.Dx())
	requireInterior("HelmholtzMatrix", g)
	return fivePointMatrix(g, 1+4*alpha*byDeltaSquared, -alpha*byDeltaSquared)
}

func fivePointMatrix(g *grid.Grid, diag, off float64) (A *sparse.CSR) {
	var (
		nx, ny = g.Nx(), g.Ny()
		n      = g.NumInterior()
		dok    = sparse.NewDOK(n, n)
	)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			k := InteriorIndex(g, i, j)
			dok.Set(k, k, diag)
			if i > 1 {
				dok.Set(k, InteriorIndex(g, i-1, j), off)
			}
			if i < nx-1 {
				dok.Set(k, InteriorIndex(g, i+1, j), off)
			}
			if j > 1 {
				dok.Set(k, InteriorIndex(g, i, j-1), off)
			}
			if j < ny-1 {
				dok.Set(k, InteriorIndex(g, i, j+1), off)
			}
		}
	}
	A = dok.ToCSR()
	return
}

func requireInterior(op string, g *grid.Grid) {
	if !g.HasInterior() {
		panic(fmt.Errorf("%w: %s needs interior nodes, have %s", grid.ErrInvalidGrid, op, g))
	}
}

func InteriorIndex(g *grid.Grid, i, j int) int { return (i-1)*(g.Ny()-1) + (j - 1) }

// PackInterior copies the interior nodes of f into a vector ordered by
// InteriorIndex.
func PackInterior(f *fields.Scalar) (x *mat.VecDense) {
	var (
		g      = f.Grid()
		nx, ny = g.Nx(), g.Ny()
	)
	requireInterior("PackInterior", g)
	x = mat.NewVecDense(g.NumInterior(), nil)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			x.SetVec(InteriorIndex(g, i, j), f.At(i, j))
		}
	}
	return
}

// UnpackInterior writes x into the interior nodes of f and zeroes the
// boundary.
func UnpackInterior(x mat.Vector, f *fields.Scalar) {
	var (
		g      = f.Grid()
		nx, ny = g.Nx(), g.Ny()
	)
	f.Fill(0)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			f.Set(i, j, x.AtVec(InteriorIndex(g, i, j)))
		}
	}
}
