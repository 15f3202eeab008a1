package Poisson2D

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/ibpm/InputParameters"
	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/grid"
	"github.com/notargets/ibpm/spectral"
	"github.com/notargets/ibpm/utils"
	"github.com/notargets/ibpm/vectorops"
)

type CaseType uint

const (
	SINE CaseType = iota
	GAUSSIAN
)

var (
	CaseNames = map[string]CaseType{
		"sine":     SINE,
		"gaussian": GAUSSIAN,
	}
	CasePrintNames = []string{"Sine Mode Analytic Solution", "Gaussian Vortex"}
)

func NewCaseType(label string) (ct CaseType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty case type, must be one of %v", CaseNames)
		panic(err)
	}
	label = strings.ToLower(label)
	if ct, ok = CaseNames[label]; !ok {
		err = fmt.Errorf("unable to use case type named %s", label)
		panic(err)
	}
	return
}

func (ct CaseType) Print() (txt string) {
	txt = CasePrintNames[ct]
	return
}

/*
	Poisson solves for the streamfunction of a vorticity field on a uniform
	grid with psi = 0 on the boundary:
		Alpha == 0:	Curl(CurlScalar(psi)) = -Laplacian(psi) = omega
		Alpha > 0:	(1 - Alpha Laplacian) psi = omega, an implicit diffusion step
	Each solve is done twice, by sine transform and by conjugate gradient on the
	assembled matrix, and the two are compared.
*/
type Poisson struct {
	Grid           *grid.Grid
	Case           CaseType
	Wavenumber     [2]int
	Alpha          float64
	Tolerance      float64
	MaxIterations  int
	ParallelDegree int
	Omega          *fields.Scalar // Right hand side
	Exact          *fields.Scalar // Analytic solution, nil when there is none
	solver         *spectral.Solver
}

type Solution struct {
	Psi, PsiCG    *fields.Scalar
	Velocity      *fields.Flux // CurlScalar(Psi)
	CGIterations  int
	CGErr         error
	SpectralTime  time.Duration
	CGTime        time.Duration
	MaxError      float64 // Against the analytic solution, NaN without one
	MaxDifference float64 // Sine transform against conjugate gradient
	Energy        float64 // FluxInnerProduct(Velocity, Velocity)
	EnergyDefect  float64 // |Energy - InnerProduct(Omega, Psi)| / Energy, Alpha == 0 only
	NetFlow       [2]float64
}

func NewPoisson(ip *InputParameters.InputParameters2D, verbose bool) (c *Poisson) {
	var (
		err error
	)
	if err = ip.Validate(); err != nil {
		panic(err)
	}
	c = &Poisson{
		Grid:          ip.NewGrid(),
		Case:          NewCaseType(ip.Case),
		Wavenumber:    ip.Wavenumber,
		Alpha:         ip.Alpha,
		Tolerance:     ip.Tolerance,
		MaxIterations: ip.MaxIterations,
	}
	if verbose {
		c.solver = spectral.NewSolverVerbose(c.Grid, ip.ParallelDegree)
	} else {
		c.solver = spectral.NewSolver(c.Grid, ip.ParallelDegree)
	}
	c.ParallelDegree = c.solver.ParallelDegree
	c.InitializeSolution()
	if verbose {
		fmt.Printf("Streamfunction Poisson problem in 2 dimensions\n")
		fmt.Printf("Solving %s\n", c.Case.Print())
		if c.Case == SINE {
			fmt.Printf("Wavenumber = [%d, %d]\n", c.Wavenumber[0], c.Wavenumber[1])
		}
		if c.Alpha != 0 {
			fmt.Printf("Helmholtz Alpha = %8.5f\n", c.Alpha)
		}
		fmt.Printf("CG Tolerance = %8.2e, CG Max Iterations = %d\n\n", c.Tolerance, c.MaxIterations)
	}
	return
}

func (c *Poisson) InitializeSolution() {
	switch c.Case {
	case SINE:
		c.Omega, c.Exact = c.sineMode()
	case GAUSSIAN:
		c.Omega, c.Exact = c.gaussianVortex(), nil
	}
}

// sineMode is an eigenfunction of the continuous Laplacian, so the discrete
// solution differs from it by the O(dx^2) error in the eigenvalue.
func (c *Poisson) sineMode() (omega, psi *fields.Scalar) {
	var (
		g      = c.Grid
		kx     = float64(c.Wavenumber[0]) * math.Pi / g.Length()
		ky     = float64(c.Wavenumber[1]) * math.Pi / g.Height()
		kappa2 = kx*kx + ky*ky
		factor = kappa2
	)
	if c.Alpha != 0 {
		factor = 1 + c.Alpha*kappa2
	}
	psi = fields.NewScalar(g)
	for i := 1; i < g.Nx(); i++ {
		for j := 1; j < g.Ny(); j++ {
			psi.Set(i, j, math.Sin(kx*(g.X(i)-g.XOffset()))*math.Sin(ky*(g.Y(j)-g.YOffset())))
		}
	}
	omega = psi.Scaled(factor)
	return
}

func (c *Poisson) gaussianVortex() (omega *fields.Scalar) {
	var (
		g          = c.Grid
		xc         = g.XOffset() + 0.5*g.Length()
		yc         = g.YOffset() + 0.5*g.Height()
		sigma      = 0.1 * math.Min(g.Length(), g.Height())
		bySigmaSqr = 1. / (sigma * sigma)
	)
	omega = fields.NewScalar(g)
	for i := 0; i <= g.Nx(); i++ {
		for j := 0; j <= g.Ny(); j++ {
			dx, dy := g.X(i)-xc, g.Y(j)-yc
			omega.Set(i, j, math.Exp(-(dx*dx+dy*dy)*bySigmaSqr))
		}
	}
	return
}

func (c *Poisson) Solve() (sol *Solution) {
	var (
		start time.Time
	)
	sol = &Solution{MaxError: math.NaN()}

	start = time.Now()
	sol.Psi = c.spectralSolve()
	sol.SpectralTime = time.Since(start)
	utils.IsNanPanic(sol.Psi.Data())

	start = time.Now()
	if c.Alpha == 0 {
		sol.PsiCG, sol.CGIterations, sol.CGErr = spectral.LaplacianInverseCG(c.Omega, c.Tolerance, c.MaxIterations)
		sol.PsiCG.Scale(-1)
	} else {
		sol.PsiCG, sol.CGIterations, sol.CGErr = spectral.HelmholtzInverseCG(c.Omega, c.Alpha, c.Tolerance, c.MaxIterations)
	}
	sol.CGTime = time.Since(start)
	utils.IsNanPanic(sol.PsiCG.Dense())

	sol.MaxDifference = maxAbsDifference(sol.Psi, sol.PsiCG)
	if c.Exact != nil {
		sol.MaxError = maxAbsDifference(sol.Psi, c.Exact)
	}
	sol.Velocity = vectorops.CurlScalar(sol.Psi)
	sol.Energy = vectorops.FluxInnerProduct(sol.Velocity, sol.Velocity)
	utils.IsNanPanic(sol.Energy)
	if c.Alpha == 0 && sol.Energy != 0 {
		sol.EnergyDefect = math.Abs(sol.Energy-vectorops.InnerProduct(c.Omega, sol.Psi)) / sol.Energy
	}
	sol.NetFlow = [2]float64{vectorops.XSum(sol.Velocity), vectorops.YSum(sol.Velocity)}
	return
}

func (c *Poisson) spectralSolve() (psi *fields.Scalar) {
	if c.Alpha == 0 {
		return c.solver.LaplacianInverse(c.Omega).Scale(-1)
	}
	return c.solver.HelmholtzInverse(c.Omega, c.Alpha)
}

func (sol *Solution) Print() {
	fmt.Printf("Sine transform solve time = %v\n", sol.SpectralTime)
	fmt.Printf("Conjugate gradient solve time = %v, iterations = %d\n", sol.CGTime, sol.CGIterations)
	if sol.CGErr != nil {
		fmt.Printf("Conjugate gradient: %s\n", sol.CGErr.Error())
	}
	fmt.Printf("Max |psi - psiCG| = %8.5e\n", sol.MaxDifference)
	if !math.IsNaN(sol.MaxError) {
		fmt.Printf("Max |psi - exact| = %8.5e\n", sol.MaxError)
	}
	fmt.Printf("Kinetic energy = %8.5e", sol.Energy)
	if sol.EnergyDefect != 0 {
		fmt.Printf(", relative energy defect = %8.5e", sol.EnergyDefect)
	}
	fmt.Printf("\nNet flow = [%8.5e, %8.5e]\n", sol.NetFlow[0], sol.NetFlow[1])
}

// maxAbsDifference over the interior nodes
func maxAbsDifference(a, b *fields.Scalar) (diff float64) {
	var (
		nx, ny = a.Nx(), a.Ny()
		row    = make([]float64, ny-1)
	)
	fields.CheckShape("maxAbsDifference", a.Grid(), b.Grid())
	for i := 1; i < nx; i++ {
		for j := 1; j < ny; j++ {
			row[j-1] = a.At(i, j) - b.At(i, j)
		}
		diff = math.Max(diff, floats.Norm(row, math.Inf(1)))
	}
	return
}
