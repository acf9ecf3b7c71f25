package iir

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularSystem is returned by SteadyState when the companion system has
// no unique solution, i.e. the filter has a pole at z = 1.
var ErrSingularSystem = errors.New("iir: singular steady-state system")

// SteadyState returns the delay-line values the Filter holds after a unit
// step input has settled. Multiplying them by a level v and loading them
// with SetState makes the filter behave as if it had seen v forever.
//
// With the normalised coefficients and the companion matrix C of A(z), the
// state solves
//
//	(I - C^T) zi = B[1:] - A[1:]*B[0]
func (tf TransferFunction) SteadyState() ([]float64, error) {
	if err := tf.Validate(); err != nil {
		return nil, err
	}

	n := tf.Normalize()
	order := len(n.A) - 1

	if order == 0 {
		return []float64{}, nil
	}

	m := mat.NewDense(order, order, nil)
	rhs := mat.NewVecDense(order, nil)

	for i := range order {
		m.Set(i, 0, n.A[i+1])

		if i+1 < order {
			m.Set(i, i+1, -1)
		}

		m.Set(i, i, m.At(i, i)+1)
		rhs.SetVec(i, n.B[i+1]-n.A[i+1]*n.B[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(m, rhs); err != nil {
		// A finite condition number is only a precision warning.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
		}
	}

	out := make([]float64, order)
	for i := range out {
		out[i] = zi.AtVec(i)
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, ErrSingularSystem
		}
	}

	return out, nil
}
