package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultRCond is the relative singular value cutoff used to pick the
// effective rank of the centered design.
const DefaultRCond = 1e-12

// OLS is ordinary least squares with an intercept.
//
// Features and target are centered before solving, so the intercept is not
// part of the minimized norm. The centered system is solved through a thin
// SVD, which gives the minimum-norm solution when the design is rank
// deficient or has fewer rows than columns.
type OLS struct {
	// RCond overrides DefaultRCond when > 0.
	RCond float64
}

// NewOLS returns an OLS fitter with default settings.
func NewOLS() *OLS { return &OLS{} }

// Fit implements Fitter.
func (o *OLS) Fit(x mat.Matrix, y []float64) (Model, error) {
	if x == nil {
		return nil, &FitError{Err: ErrNoSamples}
	}
	rows, cols := x.Dims()
	if rows == 0 {
		return nil, &FitError{Err: ErrNoSamples}
	}
	if rows != len(y) {
		return nil, &FitError{Err: ErrShape}
	}
	if !finite(y) {
		return nil, &FitError{Err: ErrNonFinite}
	}

	xm := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		if !finite(col) {
			return nil, &FitError{Err: ErrNonFinite}
		}
		xm[j] = stat.Mean(col, nil)
	}
	ym := stat.Mean(y, nil)

	coef := make([]float64, cols)
	if cols > 0 {
		var xc mat.Dense
		xc.Apply(func(_, j int, v float64) float64 { return v - xm[j] }, x)
		yc := make([]float64, rows)
		copy(yc, y)
		floats.AddConst(-ym, yc)

		var svd mat.SVD
		if !svd.Factorize(&xc, mat.SVDThin) {
			return nil, &FitError{Err: ErrNoConvergence}
		}
		rcond := o.RCond
		if rcond <= 0 {
			rcond = DefaultRCond
		}
		// rank 0 means every feature is constant; the model is just the mean.
		if rank := svd.Rank(rcond); rank > 0 {
			var beta mat.VecDense
			svd.SolveVecTo(&beta, mat.NewVecDense(rows, yc), rank)
			for j := range coef {
				coef[j] = beta.AtVec(j)
			}
		}
	}
	return &Linear{coef: coef, intercept: ym - floats.Dot(xm, coef)}, nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
