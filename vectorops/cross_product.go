package vectorops

import (
	"github.com/notargets/ibpm/fields"
)

/*
	CrossProduct returns q x f = (f v, -f u) as a flux, where (u, v) are the
	node velocities of q.
		1) Convert the flux to node velocities
		2) Form -f u and f v at the nodes
		3) Convert back to edge fluxes, f v feeding the X flux and -f u the Y flux
*/
func CrossProduct(q *fields.Flux, f *fields.Scalar) (cross *fields.Flux) {
	fields.CheckShape("CrossProduct", q.Grid(), f.Grid())
	var (
		u = fields.NewScalar(f.Grid())
		v = fields.NewScalar(f.Grid())
	)
	FluxToXVelocity(q, u)
	u.MultiplyInPlace(f).Scale(-1)

	FluxToYVelocity(q, v)
	v.MultiplyInPlace(f)

	cross = fields.NewFlux(q.Grid())
	VelocityToFlux(v, u, cross) // cross = (f v, -f u)
	return
}

// CrossProductFlux returns the node field q1 x q2 = u1 v2 - u2 v1.
// Swapping the arguments negates the result.
func CrossProductFlux(q1, q2 *fields.Flux) (f *fields.Scalar) {
	fields.CheckShape("CrossProductFlux", q1.Grid(), q2.Grid())
	var (
		g = q1.Grid()
		u = fields.NewScalar(g)
		v = fields.NewScalar(g)
	)
	FluxToXVelocity(q1, u)
	FluxToYVelocity(q2, v)
	f = u.ElementwiseMultiply(v) // u1 v2

	FluxToXVelocity(q2, u)
	FluxToYVelocity(q1, v)
	f.SubtractInPlace(u.MultiplyInPlace(v)) // u1 v2 - u2 v1
	return
}
