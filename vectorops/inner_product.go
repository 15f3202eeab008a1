package vectorops

import (
	"github.com/notargets/ibpm/fields"
)

// InnerProduct is the trapezoid rule inner product of two node fields:
// interior nodes weigh 1, boundary edge nodes 1/2, corners 1/4, and the sum
// is multiplied by dx^2.
func InnerProduct(f, g *fields.Scalar) float64 {
	fields.CheckShape("InnerProduct", f.Grid(), g.Grid())
	var (
		nx, ny = f.Nx(), f.Ny()
		dx     = f.Dx()
		ip     float64
	)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			ip += f.At(i, j) * g.At(i, j)
		}
		ip += f.At(i, 0) * g.At(i, 0) / 2
		ip += f.At(i, ny) * g.At(i, ny) / 2
	}
	for j := 1; j < ny; j++ {
		ip += f.At(0, j) * g.At(0, j) / 2
		ip += f.At(nx, j) * g.At(nx, j) / 2
	}
	ip += (f.At(0, 0)*g.At(0, 0) + f.At(nx, 0)*g.At(nx, 0) +
		f.At(0, ny)*g.At(0, ny) + f.At(nx, ny)*g.At(nx, ny)) / 4
	return ip * dx * dx
}

// FluxInnerProduct weighs interior edges by 1 and the two bounding edges of
// each row (X) or column (Y) by 1/2. It is not multiplied by dx^2: a flux
// already carries a factor dx, so this is the inner product of velocities.
func FluxInnerProduct(p, q *fields.Flux) float64 {
	fields.CheckShape("FluxInnerProduct", p.Grid(), q.Grid())
	var (
		nx, ny = p.Nx(), p.Ny()
		ip     float64
	)
	for j := 0; j < ny; j++ {
		for i := 1; i < nx; i++ {
			ip += p.At(X, i, j) * q.At(X, i, j)
		}
		ip += p.At(X, 0, j) * q.At(X, 0, j) / 2
		ip += p.At(X, nx, j) * q.At(X, nx, j) / 2
	}
	for i := 0; i < nx; i++ {
		for j := 1; j < ny; j++ {
			ip += p.At(Y, i, j) * q.At(Y, i, j)
		}
		ip += p.At(Y, i, 0) * q.At(Y, i, 0) / 2
		ip += p.At(Y, i, ny) * q.At(Y, i, ny) / 2
	}
	return ip
}
