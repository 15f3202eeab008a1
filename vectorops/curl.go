package vectorops

import (
	"github.com/notargets/ibpm/fields"
)

const (
	X = fields.X
	Y = fields.Y
)

// CurlInto sets f to the curl of the flux q. Interior nodes get
//
//	f(i,j) = (Y(i,j) - Y(i-1,j) - X(i,j) + X(i,j-1)) / dx^2
//
// and every boundary node is set to exactly zero.
func CurlInto(q *fields.Flux, f *fields.Scalar) {
	fields.CheckShape("Curl", q.Grid(), f.Grid())
	var (
		nx, ny         = q.Nx(), q.Ny()
		byDeltaSquared = 1. / (q.Dx() * q.Dx())
	)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			f.Set(i, j, (q.At(Y, i, j)-q.At(Y, i-1, j)-q.At(X, i, j)+q.At(X, i, j-1))*
				byDeltaSquared)
		}
	}
	for j := 0; j <= ny; j++ {
		f.Set(0, j, 0)
		f.Set(nx, j, 0)
	}
	for i := 0; i <= nx; i++ {
		f.Set(i, 0, 0)
		f.Set(i, ny, 0)
	}
}

func Curl(q *fields.Flux) (f *fields.Scalar) {
	f = fields.NewScalar(q.Grid())
	CurlInto(q, f)
	return
}

// CurlScalarInto sets q to the curl of the node field f (a streamfunction to
// flux map). Defined on the whole flux domain, no boundary special case.
func CurlScalarInto(f *fields.Scalar, q *fields.Flux) {
	fields.CheckShape("CurlScalar", f.Grid(), q.Grid())
	var (
		nx, ny = f.Nx(), f.Ny()
	)
	for i := 0; i <= nx; i++ {
		for j := 0; j < ny; j++ {
			q.Set(X, i, j, f.At(i, j+1)-f.At(i, j))
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j <= ny; j++ {
			q.Set(Y, i, j, f.At(i, j)-f.At(i+1, j))
		}
	}
}

func CurlScalar(f *fields.Scalar) (q *fields.Flux) {
	q = fields.NewFlux(f.Grid())
	CurlScalarInto(f, q)
	return
}
