package spectral

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/grid"
	"github.com/notargets/ibpm/utils"
)

var ErrDegenerateGrid = errors.New("grid has no interior nodes")

/*
	Solver diagonalizes the five point Laplacian with homogeneous Dirichlet
	boundaries using a two dimensional type I discrete sine transform (DST-I)
	over the (nx-1) x (ny-1) interior nodes.

	The transform of length n is the RODFT00 convention
		Y[k] = 2 * sum_{j=0}^{n-1} X[j] * sin(pi*(j+1)*(k+1)/(n+1))
	which is its own inverse up to a factor 2(n+1). In two dimensions with
	n = nx-1 and ny-1 that factor is 2nx*2ny.

	Transform plans hold scratch space and are not safe for concurrent use, so
	the solver keeps its own pool: each go routine takes a workspace right
	before it transforms and gives it back on exit. A Solver is safe for
	concurrent use; no state is shared between Solvers.
*/
type Solver struct {
	grid           *grid.Grid
	ParallelDegree int
	rows, cols     *utils.PartitionMap // Interior rows (i) and columns (j)
	workspaces     sync.Pool
	blocks         sync.Pool
	eigenvalues    *fields.Scalar
}

type workspace struct {
	dstX, dstY *fourier.DST // Lengths nx-1 and ny-1
	column     []float64
}

func NewSolver(g *grid.Grid, ProcLimit int) (s *Solver) {
	return newSolver(g, ProcLimit, false)
}

func NewSolverVerbose(g *grid.Grid, ProcLimit int) (s *Solver) {
	return newSolver(g, ProcLimit, true)
}

func newSolver(g *grid.Grid, ProcLimit int, verbose bool) (s *Solver) {
	if !g.HasInterior() {
		panic(fmt.Errorf("%w: sine transform needs nx, ny > 1, have %s", ErrDegenerateGrid, g))
	}
	var (
		nx, ny = g.Nx(), g.Ny()
		NI, NJ = nx - 1, ny - 1
		NP     = utils.ParallelDegree(ProcLimit, max(NI, NJ))
	)
	s = &Solver{
		grid:           g,
		ParallelDegree: NP,
		rows:           utils.NewPartitionMap(NP, NI),
		cols:           utils.NewPartitionMap(NP, NJ),
	}
	s.workspaces.New = func() any {
		return &workspace{
			dstX:   fourier.NewDST(NI),
			dstY:   fourier.NewDST(NJ),
			column: make([]float64, NI),
		}
	}
	s.blocks.New = func() any {
		return make([]float64, NI*NJ)
	}
	s.eigenvalues = laplacianEigenvalues(g)
	if verbose {
		fmt.Printf("Sine transform Poisson solver on %s\n", g)
		fmt.Printf("Using %d go routines in parallel\n", s.ParallelDegree)
		fmt.Printf("Normalization = 1/(%d*%d)\n", 2*nx, 2*ny)
	}
	return
}

func (s *Solver) Grid() *grid.Grid { return s.grid }

// Eigenvalue of the five point Laplacian for sine mode (i,j), i in [1,nx-1],
// j in [1,ny-1]:
//
//	(2cos(pi i/nx) - 2 + 2cos(pi j/ny) - 2) / dx^2
func (s *Solver) Eigenvalue(i, j int) float64 { return s.eigenvalues.At(i, j) }

// Eigenvalues returns a copy of the eigenvalues laid out on the nodes of the
// grid, zero on the boundary.
func (s *Solver) Eigenvalues() *fields.Scalar { return s.eigenvalues.Copy() }

func laplacianEigenvalues(g *grid.Grid) (eig *fields.Scalar) {
	var (
		nx, ny = g.Nx(), g.Ny()
		dx2    = g.Dx() * g.Dx()
	)
	eig = fields.NewScalar(g)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			eig.Set(i, j, (2*math.Cos(math.Pi*float64(i)/float64(nx))-2+
				2*math.Cos(math.Pi*float64(j)/float64(ny))-2)/dx2)
		}
	}
	return
}

// SinTransform returns the two dimensional DST-I of the interior of f, with
// the boundary of the result set to zero. With normalize the result is
// scaled by 1/(2nx*2ny), so
//
//	SinTransform(SinTransform(f, false), true)
//
// reproduces the interior of f.
func (s *Solver) SinTransform(f *fields.Scalar, normalize bool) (fhat *fields.Scalar) {
	fhat = fields.NewScalar(s.grid)
	s.SinTransformInto(f, fhat, normalize)
	return
}

// SinTransformInto writes the transform of f into fhat. f and fhat may be the
// same Scalar.
func (s *Solver) SinTransformInto(f, fhat *fields.Scalar, normalize bool) {
	fields.CheckShape("SinTransform", s.grid, f.Grid())
	fields.CheckShape("SinTransform", s.grid, fhat.Grid())
	var (
		nx, ny = s.grid.Nx(), s.grid.Ny()
		NJ     = ny - 1
		block  = s.blocks.Get().([]float64)
	)
	defer s.blocks.Put(block)

	for i := 0; i < nx-1; i++ {
		for j := 0; j < NJ; j++ {
			block[i*NJ+j] = f.At(i+1, j+1)
		}
	}
	s.transformBlock(block)

	fhat.Fill(0)
	for i := 0; i < nx-1; i++ {
		for j := 0; j < NJ; j++ {
			fhat.Set(i+1, j+1, block[i*NJ+j])
		}
	}
	if normalize {
		fhat.Scale(1. / float64(2*nx*2*ny))
	}
}

// transformBlock applies the DST-I along j for every row, then along i for
// every column, of the row major (nx-1) x (ny-1) block, in place.
func (s *Solver) transformBlock(block []float64) {
	var (
		NI, NJ = s.grid.Nx() - 1, s.grid.Ny() - 1
	)
	s.rows.Execute(func(np, iMin, iMax int) {
		ws := s.workspaces.Get().(*workspace)
		defer s.workspaces.Put(ws)
		for i := iMin; i < iMax; i++ {
			row := block[i*NJ : (i+1)*NJ]
			ws.dstY.Transform(row, row)
		}
	})
	s.cols.Execute(func(np, jMin, jMax int) {
		ws := s.workspaces.Get().(*workspace)
		defer s.workspaces.Put(ws)
		col := ws.column
		for j := jMin; j < jMax; j++ {
			for i := 0; i < NI; i++ {
				col[i] = block[i*NJ+j]
			}
			ws.dstX.Transform(col, col)
			for i := 0; i < NI; i++ {
				block[i*NJ+j] = col[i]
			}
		}
	})
}

// LaplacianInverse solves Laplacian(x) = f at the interior nodes with x = 0
// on the boundary. The boundary values of f are ignored.
func (s *Solver) LaplacianInverse(f *fields.Scalar) (x *fields.Scalar) {
	x = s.SinTransform(f, false)
	s.divideInterior(x, func(i, j int) float64 { return s.eigenvalues.At(i, j) })
	s.SinTransformInto(x, x, true)
	return
}

// HelmholtzInverse solves (1 - alpha Laplacian) x = f at the interior nodes
// with x = 0 on the boundary, as needed by implicit diffusion steps.
func (s *Solver) HelmholtzInverse(f *fields.Scalar, alpha float64) (x *fields.Scalar) {
	x = s.SinTransform(f, false)
	s.divideInterior(x, func(i, j int) float64 { return 1 - alpha*s.eigenvalues.At(i, j) })
	s.SinTransformInto(x, x, true)
	return
}

func (s *Solver) divideInterior(x *fields.Scalar, denom func(i, j int) float64) {
	var (
		nx, ny = s.grid.Nx(), s.grid.Ny()
	)
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			*x.Ptr(i, j) /= denom(i, j)
		}
	}
}
