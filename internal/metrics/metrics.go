// Package metrics computes fit-quality measures over actual and predicted
// series. All statistics use population moments (divisor n).
package metrics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned for zero-length input; MAE and MSE are undefined there.
	ErrEmpty = errors.New("metrics: empty series")
	// ErrLengthMismatch is returned when paired series differ in length.
	ErrLengthMismatch = errors.New("metrics: series length mismatch")
)

func checkPair(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return ErrLengthMismatch
	}
	if len(actual) == 0 {
		return ErrEmpty
	}
	return nil
}

// MAE returns sum(|a-p|)/n.
func MAE(actual, predicted []float64) (float64, error) {
	if err := checkPair(actual, predicted); err != nil {
		return 0, err
	}
	return floats.Distance(actual, predicted, 1) / float64(len(actual)), nil
}

// MSE returns sum((a-p)^2)/n.
func MSE(actual, predicted []float64) (float64, error) {
	if err := checkPair(actual, predicted); err != nil {
		return 0, err
	}
	diff := make([]float64, len(actual))
	floats.SubTo(diff, actual, predicted)
	return floats.Dot(diff, diff) / float64(len(actual)), nil
}

// RSquared returns the coefficient of determination of predicted against
// actual. It is NaN when actual has no variance.
func RSquared(actual, predicted []float64) (float64, error) {
	if err := checkPair(actual, predicted); err != nil {
		return 0, err
	}
	mean := stat.Mean(actual, nil)
	var ssRes, ssTot float64
	for i, a := range actual {
		r := a - predicted[i]
		ssRes += r * r
		d := a - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return math.NaN(), nil
	}
	return 1 - ssRes/ssTot, nil
}

// Correlations returns the Pearson correlation of every column of features
// against target, in column order. A column (or target) with zero variance
// yields exactly 0.
func Correlations(features mat.Matrix, target []float64) ([]float64, error) {
	rows, cols := features.Dims()
	if rows != len(target) {
		return nil, ErrLengthMismatch
	}
	if rows == 0 {
		return nil, ErrEmpty
	}
	ym, ys := popMeanStd(target)
	out := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, features)
		xm, xs := popMeanStd(col)
		if xs <= 0 || ys <= 0 {
			out[j] = 0
			continue
		}
		var cov float64
		for i, x := range col {
			cov += (x - xm) * (target[i] - ym)
		}
		cov /= float64(rows)
		out[j] = cov / (xs * ys)
	}
	return out, nil
}

// popMeanStd returns the mean and population standard deviation of x.
// A constant series has a std of exactly 0.
func popMeanStd(x []float64) (mean, std float64) {
	if floats.Min(x) == floats.Max(x) {
		return x[0], 0
	}
	mean = stat.Mean(x, nil)
	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(x)))
}
