package vectorops

import (
	"github.com/notargets/ibpm/fields"
)

// FluxToXVelocity sets u to the x velocity at the nodes, the average of the
// two X fluxes above and below each node divided by dx. Nodes on the bottom
// and top boundaries have one neighboring edge and use it alone, so the
// factor there is 1/dx instead of 1/(2dx).
func FluxToXVelocity(q *fields.Flux, u *fields.Scalar) {
	fields.CheckShape("FluxToXVelocity", q.Grid(), u.Grid())
	var (
		nx, ny        = q.Nx(), q.Ny()
		oneOver2Delta = 1. / (2 * q.Dx())
	)
	for i := 0; i <= nx; i++ {
		for j := 1; j < ny; j++ {
			u.Set(i, j, (q.At(X, i, j)+q.At(X, i, j-1))*oneOver2Delta)
		}
		u.Set(i, 0, q.At(X, i, 0)*2*oneOver2Delta)
		u.Set(i, ny, q.At(X, i, ny-1)*2*oneOver2Delta)
	}
}

// FluxToYVelocity is the y counterpart of FluxToXVelocity, averaging Y
// fluxes left and right of each node, one sided on the left and right
// boundaries.
func FluxToYVelocity(q *fields.Flux, v *fields.Scalar) {
	fields.CheckShape("FluxToYVelocity", q.Grid(), v.Grid())
	var (
		nx, ny        = q.Nx(), q.Ny()
		oneOver2Delta = 1. / (2 * q.Dx())
	)
	for j := 0; j <= ny; j++ {
		for i := 1; i < nx; i++ {
			v.Set(i, j, (q.At(Y, i, j)+q.At(Y, i-1, j))*oneOver2Delta)
		}
		v.Set(0, j, q.At(Y, 0, j)*2*oneOver2Delta)
		v.Set(nx, j, q.At(Y, nx-1, j)*2*oneOver2Delta)
	}
}

func FluxToVelocity(q *fields.Flux, u, v *fields.Scalar) {
	FluxToXVelocity(q, u)
	FluxToYVelocity(q, v)
}

// XVelocityToFlux converts node x velocities to X fluxes through the
// vertical edges. The Y component of q is left untouched.
func XVelocityToFlux(u *fields.Scalar, q *fields.Flux) {
	fields.CheckShape("XVelocityToFlux", u.Grid(), q.Grid())
	var (
		nx, ny     = u.Nx(), u.Ny()
		deltaOver2 = u.Dx() / 2.
	)
	for i := 0; i <= nx; i++ {
		for j := 0; j < ny; j++ {
			q.Set(X, i, j, (u.At(i, j)+u.At(i, j+1))*deltaOver2)
		}
	}
}

// YVelocityToFlux converts node y velocities to Y fluxes through the
// horizontal edges. The X component of q is left untouched.
func YVelocityToFlux(v *fields.Scalar, q *fields.Flux) {
	fields.CheckShape("YVelocityToFlux", v.Grid(), q.Grid())
	var (
		nx, ny     = v.Nx(), v.Ny()
		deltaOver2 = v.Dx() / 2.
	)
	for i := 0; i < nx; i++ {
		for j := 0; j <= ny; j++ {
			q.Set(Y, i, j, (v.At(i, j)+v.At(i+1, j))*deltaOver2)
		}
	}
}

func VelocityToFlux(u, v *fields.Scalar, q *fields.Flux) {
	XVelocityToFlux(u, q)
	YVelocityToFlux(v, q)
}
