package Poisson2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/notargets/ibpm/InputParameters"
	"github.com/notargets/ibpm/vectorops"
)

// ConvergenceStudy holds the error against the analytic solution over a
// sequence of grid refinements at a fixed aspect ratio.
type ConvergenceStudy struct {
	Title          string
	NumPts         []int // Nx of each grid
	MaxErr, RMSErr []float64
	Order          []float64 // Observed order from the previous grid, NaN for the first
}

func RunConvergenceStudy(ip *InputParameters.InputParameters2D, sizes []int) (cs *ConvergenceStudy) {
	if NewCaseType(ip.Case) != SINE {
		panic(fmt.Errorf("convergence study needs an analytic solution, case %s has none", ip.Case))
	}
	cs = &ConvergenceStudy{Title: ip.Title}
	for _, n := range sizes {
		ipN := *ip
		ipN.Nx = n
		ipN.Ny = max(2, int(math.Round(float64(n*ip.Ny)/float64(ip.Nx))))
		c := NewPoisson(&ipN, false)
		psi := c.spectralSolve()
		e := psi.Subtract(c.Exact)
		cs.NumPts = append(cs.NumPts, n)
		cs.MaxErr = append(cs.MaxErr, maxAbsDifference(psi, c.Exact))
		cs.RMSErr = append(cs.RMSErr, math.Sqrt(vectorops.InnerProduct(e, e)/c.Grid.Area()))
	}
	cs.Order = make([]float64, len(cs.NumPts))
	for k := range cs.NumPts {
		if k == 0 {
			cs.Order[k] = math.NaN()
			continue
		}
		cs.Order[k] = math.Log(cs.MaxErr[k-1]/cs.MaxErr[k]) /
			math.Log(float64(cs.NumPts[k])/float64(cs.NumPts[k-1]))
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s\n", cs.Title)
	fmt.Printf("%8s %14s %14s %8s\n", "Nx", "Max Error", "RMS Error", "Order")
	for k := range cs.NumPts {
		fmt.Printf("%8d %14.5e %14.5e %8.3f\n", cs.NumPts[k], cs.MaxErr[k], cs.RMSErr[k], cs.Order[k])
	}
}

func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	var (
		cw = csv.NewWriter(w)
		ff = func(f float64) string { return strconv.FormatFloat(f, 'g', 10, 64) }
	)
	if err = cw.Write([]string{"Nx", "MaxError", "RMSError", "Order"}); err != nil {
		return
	}
	for k := range cs.NumPts {
		rec := []string{strconv.Itoa(cs.NumPts[k]), ff(cs.MaxErr[k]), ff(cs.RMSErr[k]), ff(cs.Order[k])}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
