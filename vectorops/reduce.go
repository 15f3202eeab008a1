package vectorops

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/ibpm/fields"
)

// XSum is the sum of every X flux, the net flow through the vertical edges.
func XSum(q *fields.Flux) float64 { return floats.Sum(q.Data(X)) }

// YSum is the sum of every Y flux.
func YSum(q *fields.Flux) float64 { return floats.Sum(q.Data(Y)) }

// NetForce sums a boundary force over all boundary points.
func NetForce(f *fields.BoundaryVector) (xforce, yforce float64) {
	xforce = floats.Sum(f.Component(X))
	yforce = floats.Sum(f.Component(Y))
	return
}
