package spectral

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/grid"
	"github.com/notargets/ibpm/vectorops"
)

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-10
	} else {
		tol = tolI[0]
	}
	if math.Abs(a-b) <= tol*math.Max(1, math.Abs(a)) {
		l = true
	}
	return
}

func randomInterior(g *grid.Grid, rng *rand.Rand) (f *fields.Scalar) {
	f = fields.NewScalar(g)
	for i := 1; i < g.Nx(); i++ {
		for j := 1; j < g.Ny(); j++ {
			f.Set(i, j, 2*rng.Float64()-1)
		}
	}
	return
}

func sineMode(g *grid.Grid, k, l int) (f *fields.Scalar) {
	var (
		nx, ny = g.Nx(), g.Ny()
	)
	f = fields.NewScalar(g)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			f.Set(i, j, math.Sin(math.Pi*float64(k*i)/float64(nx))*
				math.Sin(math.Pi*float64(l*j)/float64(ny)))
		}
	}
	return
}

func assertInteriorNear(t *testing.T, want, got *fields.Scalar, tol float64) {
	t.Helper()
	for i := 1; i < want.Nx(); i++ {
		for j := 1; j < want.Ny(); j++ {
			assert.True(t, near(want.At(i, j), got.At(i, j), tol),
				"(%d,%d): want %v, got %v", i, j, want.At(i, j), got.At(i, j))
		}
	}
}

func assertBoundaryZero(t *testing.T, f *fields.Scalar) {
	t.Helper()
	nx, ny := f.Nx(), f.Ny()
	for i := 0; i <= nx; i++ {
		assert.Equal(t, 0., f.At(i, 0))
		assert.Equal(t, 0., f.At(i, ny))
	}
	for j := 0; j <= ny; j++ {
		assert.Equal(t, 0., f.At(0, j))
		assert.Equal(t, 0., f.At(nx, j))
	}
}

func TestSinTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	{ // Round trip recovers the interior, for odd and even sizes
		for _, dims := range [][2]int{{12, 9}, {2, 2}, {2, 7}, {16, 16}, {5, 3}} {
			g := grid.NewGrid(dims[0], dims[1], 1., 0, 0)
			s := NewSolver(g, 0)
			f := randomInterior(g, rng)
			back := s.SinTransform(s.SinTransform(f, false), true)
			assertInteriorNear(t, f, back, 1.e-12)
			assertBoundaryZero(t, back)
		}
	}
	{ // Boundary values of the input are ignored, output boundary is zero
		g := grid.NewGrid(6, 5, 1., 0, 0)
		s := NewSolver(g, 1)
		f := randomInterior(g, rng)
		h := f.Copy()
		for i := 0; i <= 6; i++ {
			h.Set(i, 0, 100)
			h.Set(i, 5, -100)
		}
		fhat, hhat := s.SinTransform(f, false), s.SinTransform(h, false)
		assert.Equal(t, fhat.Data(), hhat.Data())
		assertBoundaryZero(t, hhat)
	}
	{ // A single sine mode transforms to a spike of height nx*ny
		g := grid.NewGrid(8, 6, 2., 0, 0)
		s := NewSolver(g, 0)
		fhat := s.SinTransform(sineMode(g, 2, 3), false)
		for i := 1; i < 8; i++ {
			for j := 1; j < 6; j++ {
				if i == 2 && j == 3 {
					assert.True(t, near(48., fhat.At(i, j), 1.e-12))
				} else {
					assert.True(t, near(0., fhat.At(i, j), 1.e-12), "(%d,%d) = %v", i, j, fhat.At(i, j))
				}
			}
		}
		norm := s.SinTransform(sineMode(g, 2, 3), true)
		assert.True(t, near(48./(16*12), norm.At(2, 3), 1.e-12))
	}
	{ // In place use
		g := grid.NewGrid(7, 4, 1., 0, 0)
		s := NewSolver(g, 2)
		f := randomInterior(g, rng)
		ref := s.SinTransform(f, true)
		s.SinTransformInto(f, f, true)
		assert.Equal(t, ref.Data(), f.Data())
	}
	{ // Preconditions
		for _, g := range []*grid.Grid{grid.NewGrid(1, 5, 1., 0, 0), grid.NewGrid(5, 1, 1., 0, 0)} {
			func() {
				defer func() {
					err, ok := recover().(error)
					require.True(t, ok)
					assert.True(t, errors.Is(err, ErrDegenerateGrid))
				}()
				NewSolver(g, 0)
			}()
		}
		s := NewSolver(grid.NewGrid(4, 4, 1., 0, 0), 0)
		assert.Panics(t, func() { s.SinTransform(fields.NewScalar(grid.NewGrid(4, 5, 1., 0, 0)), false) })
	}
}

func TestSinTransformParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	g := grid.NewGrid(33, 17, 1., 0, 0)
	var (
		serial   = NewSolver(g, 1)
		parallel = NewSolver(g, 4)
		inputs   = make([]*fields.Scalar, 8)
		want     = make([]*fields.Scalar, 8)
		got      = make([]*fields.Scalar, 8)
		wg       = sync.WaitGroup{}
	)
	assert.Equal(t, 1, serial.ParallelDegree)
	assert.Equal(t, 4, parallel.ParallelDegree)
	for n := range inputs {
		inputs[n] = randomInterior(g, rng)
		want[n] = serial.SinTransform(inputs[n], false)
	}
	// Concurrent calls on one solver, each of which also fans out
	for n := range inputs {
		wg.Add(1)
		go func(n int) {
			got[n] = parallel.SinTransform(inputs[n], false)
			wg.Done()
		}(n)
	}
	wg.Wait()
	for n := range inputs {
		assert.Equal(t, want[n].Data(), got[n].Data())
	}
}

func TestLaplacianInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	g := grid.NewGrid(12, 9, 1.2, 0, 0)
	s := NewSolver(g, 0)
	{ // Eigenvalues of the five point Laplacian
		dx2 := g.Dx() * g.Dx()
		assert.True(t, near((2*math.Cos(math.Pi/12)-2+2*math.Cos(math.Pi/9)-2)/dx2, s.Eigenvalue(1, 1), 1.e-14))
		mode := sineMode(g, 3, 4)
		L := vectorops.Laplacian(mode)
		assertInteriorNear(t, mode.Scaled(s.Eigenvalue(3, 4)), L, 1.e-12)
		eig := s.Eigenvalues()
		assertBoundaryZero(t, eig)
		for i := 1; i < 12; i++ {
			for j := 1; j < 9; j++ {
				assert.True(t, eig.At(i, j) < 0)
			}
		}
	}
	{ // Inverse of the Laplacian, both orders
		f := randomInterior(g, rng)
		x := s.LaplacianInverse(vectorops.Laplacian(f))
		assertInteriorNear(t, f, x, 1.e-10)
		assertBoundaryZero(t, x)

		rhs := randomInterior(g, rng)
		assertInteriorNear(t, rhs, vectorops.Laplacian(s.LaplacianInverse(rhs)), 1.e-10)
	}
	{ // Curl of curl inverts with a sign change: the streamfunction of a vorticity field
		omega := randomInterior(g, rng)
		psi := s.LaplacianInverse(omega).Scale(-1)
		assertInteriorNear(t, omega, vectorops.Curl(vectorops.CurlScalar(psi)), 1.e-10)
	}
	{ // Helmholtz: (1 - alpha L) x = f
		alpha := 0.05
		f := randomInterior(g, rng)
		x := s.HelmholtzInverse(f, alpha)
		lhs := x.Subtract(vectorops.Laplacian(x).Scale(alpha))
		assertInteriorNear(t, f, lhs, 1.e-10)
		assertInteriorNear(t, f, s.HelmholtzInverse(f, 0), 1.e-12)
		xc, _, err := HelmholtzInverseCG(f, alpha, 1.e-13, 1000)
		require.NoError(t, err)
		assertInteriorNear(t, x, xc, 1.e-8)
	}
	{ // Agrees with conjugate gradient on the assembled matrix
		f := randomInterior(g, rng)
		xs := s.LaplacianInverse(f)
		xc, iters, err := LaplacianInverseCG(f, 1.e-13, 1000)
		require.NoError(t, err)
		assert.True(t, iters > 0)
		assertInteriorNear(t, xs, xc, 1.e-8)
		assertBoundaryZero(t, xc)
	}
}

func TestConjugateGradient(t *testing.T) {
	g := grid.NewGrid(10, 10, 1., 0, 0)
	A := vectorops.LaplacianMatrix(g)
	{ // Zero right hand side returns zero immediately
		x, iters, err := ConjugateGradient(A, make([]float64, g.NumInterior()), 1.e-10, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, iters)
		for _, val := range x {
			assert.Equal(t, 0., val)
		}
	}
	{ // Too few iterations is reported, not hidden
		b := make([]float64, g.NumInterior())
		for n := range b {
			b[n] = float64(n % 7)
		}
		_, iters, err := ConjugateGradient(A, b, 1.e-14, 2)
		assert.Error(t, err)
		assert.Equal(t, 2, iters)
	}
	assert.Panics(t, func() { ConjugateGradient(A, make([]float64, 3), 1.e-10, 10) })
}
