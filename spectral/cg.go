package spectral

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/ibpm/fields"
	"github.com/notargets/ibpm/vectorops"
)

// ConjugateGradient solves A x = b for a symmetric definite sparse A, either
// sign. It stops when the residual norm drops below tol times the norm of b.
// Slow compared to the sine transform, it exists to cross check it on the
// assembled operator.
func ConjugateGradient(A *sparse.CSR, b []float64, tol float64, maxIter int) (x []float64, iters int, err error) {
	var (
		n     = len(b)
		r     = make([]float64, n)
		p     = make([]float64, n)
		Ap    = make([]float64, n)
		bNorm = floats.Norm(b, 2)
		sign  = 1.
	)
	x = make([]float64, n)
	if nr, nc := A.Dims(); nr != n || nc != n {
		panic(fmt.Errorf("%w: matrix is %d x %d, rhs has %d entries", fields.ErrShapeMismatch, nr, nc, n))
	}
	if bNorm == 0 {
		return
	}
	// CG needs a positive definite operator, flip the sign of a negative one
	if A.At(0, 0) < 0 {
		sign = -1
	}
	copy(r, b)
	floats.Scale(sign, r)
	copy(p, r)
	rr := floats.Dot(r, r)
	for iters = 1; iters <= maxIter; iters++ {
		csrMulVec(A, p, Ap)
		floats.Scale(sign, Ap)
		alpha := rr / floats.Dot(p, Ap)
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, Ap)
		rrNew := floats.Dot(r, r)
		if math.Sqrt(rrNew) < tol*bNorm {
			return
		}
		floats.AddScaledTo(p, r, rrNew/rr, p)
		rr = rrNew
	}
	iters = maxIter
	err = fmt.Errorf("conjugate gradient did not converge in %d iterations, residual = %8.5e",
		maxIter, math.Sqrt(rr)/bNorm)
	return
}

func csrMulVec(A *sparse.CSR, x, y []float64) {
	raw := A.RawMatrix()
	for i := 0; i < raw.I; i++ {
		var sum float64
		for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
			sum += raw.Data[k] * x[raw.Ind[k]]
		}
		y[i] = sum
	}
}

// LaplacianInverseCG solves the same problem as Solver.LaplacianInverse by
// conjugate gradient on the assembled five point Laplacian.
func LaplacianInverseCG(f *fields.Scalar, tol float64, maxIter int) (x *fields.Scalar, iters int, err error) {
	return solveInterior(vectorops.LaplacianMatrix(f.Grid()), f, tol, maxIter)
}

// HelmholtzInverseCG is the conjugate gradient counterpart of
// Solver.HelmholtzInverse.
func HelmholtzInverseCG(f *fields.Scalar, alpha, tol float64, maxIter int) (x *fields.Scalar, iters int, err error) {
	return solveInterior(vectorops.HelmholtzMatrix(f.Grid(), alpha), f, tol, maxIter)
}

func solveInterior(A *sparse.CSR, f *fields.Scalar, tol float64, maxIter int) (x *fields.Scalar, iters int, err error) {
	var (
		rhs = vectorops.PackInterior(f).RawVector().Data
		sol []float64
	)
	x = fields.NewScalar(f.Grid())
	if sol, iters, err = ConjugateGradient(A, rhs, tol, maxIter); err != nil {
		return
	}
	vectorops.UnpackInterior(mat.NewVecDense(len(sol), sol), x)
	return
}
