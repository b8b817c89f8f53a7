// Package regression fits linear models relating a feature matrix to a
// target vector.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoSamples is returned when the feature matrix has no rows.
	ErrNoSamples = errors.New("no samples to fit")
	// ErrShape is returned when x and y disagree in length, or when Predict
	// gets a matrix with the wrong number of columns.
	ErrShape = errors.New("feature and target shapes do not match")
	// ErrNonFinite is returned when any input value is NaN or Inf.
	ErrNonFinite = errors.New("input contains NaN or Inf")
	// ErrNoConvergence is returned when the SVD factorization fails.
	ErrNoConvergence = errors.New("SVD did not converge")
)

// FitError reports that a model could not be fitted.
type FitError struct {
	Err error
}

func (e *FitError) Error() string { return fmt.Sprintf("fit model: %v", e.Err) }

func (e *FitError) Unwrap() error { return e.Err }

// Fitter trains a Model from a feature matrix x (one row per sample) and a
// target vector y paired positionally with the rows of x.
type Fitter interface {
	Fit(x mat.Matrix, y []float64) (Model, error)
}

// Model is a fitted linear model.
type Model interface {
	// Coefficients returns one weight per feature column.
	Coefficients() []float64
	Intercept() float64
	Predict(x mat.Matrix) ([]float64, error)
}

// Linear is y = x·coef + intercept.
type Linear struct {
	coef      []float64
	intercept float64
}

// NewLinear builds a Linear model from known parameters.
func NewLinear(coef []float64, intercept float64) *Linear {
	c := make([]float64, len(coef))
	copy(c, coef)
	return &Linear{coef: c, intercept: intercept}
}

func (m *Linear) Coefficients() []float64 {
	c := make([]float64, len(m.coef))
	copy(c, m.coef)
	return c
}

func (m *Linear) Intercept() float64 { return m.intercept }

// Predict evaluates the model on every row of x.
func (m *Linear) Predict(x mat.Matrix) ([]float64, error) {
	rows, cols := x.Dims()
	if cols != len(m.coef) {
		return nil, fmt.Errorf("predict: %w: got %d columns, model has %d", ErrShape, cols, len(m.coef))
	}
	out := make([]float64, rows)
	if rows == 0 {
		return out, nil
	}
	var p mat.VecDense
	p.MulVec(x, mat.NewVecDense(len(m.coef), m.coef))
	for i := range out {
		out[i] = p.AtVec(i) + m.intercept
	}
	return out, nil
}
