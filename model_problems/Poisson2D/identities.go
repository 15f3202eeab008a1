package Poisson2D

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/grid"
	"github.com/notargets/ibpm/spectral"
	"github.com/notargets/ibpm/vectorops"
)

// Identities holds the residuals of the discrete vector calculus identities
// evaluated on random fields. Every entry should be at roundoff level.
type Identities struct {
	Grid               *grid.Grid
	CurlBoundary       float64 // max |Curl(q)| on the boundary
	Divergence         float64 // max |Divergence(CurlScalar(f))|
	CurlCurl           float64 // max |Curl(CurlScalar(f)) + Laplacian(f)|, interior, relative
	Adjointness        float64 // |<Curl(q), f> - <q, CurlScalar(f)>| relative, f = 0 on the boundary
	AntiSymmetry       float64 // max |q1 x q2 + q2 x q1|
	TransformRoundTrip float64 // max |S(S(f))/(2nx 2ny) - f|, interior
	PoissonResidual    float64 // max |Laplacian(LaplacianInverse(f)) - f|, interior, relative
}

func CheckIdentities(g *grid.Grid, ProcLimit int, seed int64) (id *Identities) {
	var (
		rng    = rand.New(rand.NewSource(seed))
		solver = spectral.NewSolver(g, ProcLimit)
		f      = randomScalar(g, rng)
		fz     = randomInterior(g, rng)
		q1, q2 = randomFlux(g, rng), randomFlux(g, rng)
	)
	id = &Identities{Grid: g}

	curl := vectorops.Curl(q1)
	id.CurlBoundary = boundaryMaxAbs(curl)

	id.Divergence = floats.Norm(vectorops.Divergence(vectorops.CurlScalar(f)).RawMatrix().Data, math.Inf(1))

	negL := vectorops.Laplacian(f).Scale(-1)
	id.CurlCurl = maxAbsDifference(vectorops.Curl(vectorops.CurlScalar(f)), negL) /
		math.Max(1, floats.Norm(negL.Data(), math.Inf(1)))

	lhs := vectorops.InnerProduct(curl, fz)
	rhs := vectorops.FluxInnerProduct(q1, vectorops.CurlScalar(fz))
	id.Adjointness = math.Abs(lhs-rhs) / math.Max(1, math.Abs(lhs))

	sum := vectorops.CrossProductFlux(q1, q2).AddInPlace(vectorops.CrossProductFlux(q2, q1))
	id.AntiSymmetry = floats.Norm(sum.Data(), math.Inf(1))

	back := solver.SinTransform(solver.SinTransform(fz, false), true)
	id.TransformRoundTrip = maxAbsDifference(back, fz)

	L := vectorops.Laplacian(solver.LaplacianInverse(fz))
	id.PoissonResidual = maxAbsDifference(L, fz) / math.Max(1, floats.Norm(fz.Data(), math.Inf(1)))
	return
}

func (id *Identities) Max() float64 {
	return floats.Max([]float64{id.CurlBoundary, id.Divergence, id.CurlCurl, id.Adjointness,
		id.AntiSymmetry, id.TransformRoundTrip, id.PoissonResidual})
}

func (id *Identities) Print() {
	fmt.Printf("Discrete identities on %s\n", id.Grid)
	fmt.Printf("%8.5e\t= Curl boundary\n", id.CurlBoundary)
	fmt.Printf("%8.5e\t= Divergence of CurlScalar\n", id.Divergence)
	fmt.Printf("%8.5e\t= Curl CurlScalar + Laplacian\n", id.CurlCurl)
	fmt.Printf("%8.5e\t= Curl adjointness\n", id.Adjointness)
	fmt.Printf("%8.5e\t= Cross product anti symmetry\n", id.AntiSymmetry)
	fmt.Printf("%8.5e\t= Sine transform round trip\n", id.TransformRoundTrip)
	fmt.Printf("%8.5e\t= Poisson residual\n", id.PoissonResidual)
}

func boundaryMaxAbs(f *fields.Scalar) (m float64) {
	var (
		nx, ny = f.Nx(), f.Ny()
	)
	for i := 0; i <= nx; i++ {
		m = math.Max(m, math.Max(math.Abs(f.At(i, 0)), math.Abs(f.At(i, ny))))
	}
	for j := 0; j <= ny; j++ {
		m = math.Max(m, math.Max(math.Abs(f.At(0, j)), math.Abs(f.At(nx, j))))
	}
	return
}

func randomScalar(g *grid.Grid, rng *rand.Rand) (f *fields.Scalar) {
	f = fields.NewScalar(g)
	d := f.Data()
	for i := range d {
		d[i] = 2*rng.Float64() - 1
	}
	return
}

// randomInterior is zero on the boundary
func randomInterior(g *grid.Grid, rng *rand.Rand) (f *fields.Scalar) {
	f = fields.NewScalar(g)
	for i := 1; i < g.Nx(); i++ {
		for j := 1; j < g.Ny(); j++ {
			f.Set(i, j, 2*rng.Float64()-1)
		}
	}
	return
}

func randomFlux(g *grid.Grid, rng *rand.Rand) (q *fields.Flux) {
	q = fields.NewFlux(g)
	for _, dir := range []fields.Direction{fields.X, fields.Y} {
		d := q.Data(dir)
		for i := range d {
			d[i] = 2*rng.Float64() - 1
		}
	}
	return
}
