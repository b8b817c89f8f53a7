package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/trophyfit-cli/internal/dataset"
	"github.com/KaramelBytes/trophyfit-cli/internal/metrics"
	"github.com/KaramelBytes/trophyfit-cli/internal/regression"
)

// Options controls a trophy regression run.
type Options struct {
	// Schema maps logical fields to raw CSV column positions.
	Schema dataset.Schema
	// SampleRows limits predictions rendered in the report; 0 means all.
	SampleRows int
	// Outlier detection on residuals via robust Z-score (MAD). Counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for a regression run.
func DefaultOptions() Options {
	return Options{
		Schema:           dataset.DefaultSchema,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is the outcome of a successful run.
type Report struct {
	RunID     string
	Name      string
	Records   int
	Defaulted int

	Features     []string
	Target       string
	Coefficients []float64
	Intercept    float64

	Actual       []float64
	Predictions  []float64
	Correlations []float64

	MAE      float64
	MSE      float64
	RSquared float64 // NaN when the target has no variance

	Cols     []ColumnSummary
	Residual ResidualSummary
	Warnings []string

	sampleRows int
}

// ColumnSummary captures population statistics of one design column.
type ColumnSummary struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// ResidualSummary reports robust outliers among actual-minus-predicted residuals.
type ResidualSummary struct {
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
}

// Run loads the player file at path, fits a model with fitter and evaluates it.
// A load failure is returned as *dataset.LoadError and a fit failure as
// *regression.FitError; no report is produced in either case.
func Run(path string, fitter regression.Fitter, opt Options) (*Report, error) {
	runID := uuid.New().String()
	logger := log.With().Str("run", runID).Logger()

	tbl, err := dataset.LoadFile(path, opt.Schema)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", tbl.Name).Int("records", len(tbl.Records)).Msg("data read")

	x, y, err := dataset.Design(tbl.Records)
	if err != nil {
		return nil, &regression.FitError{Err: err}
	}
	model, err := fitter.Fit(x, y)
	if err != nil {
		var fe *regression.FitError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &regression.FitError{Err: err}
	}
	logger.Debug().
		Floats64("coefficients", model.Coefficients()).
		Float64("intercept", model.Intercept()).
		Msg("model trained")

	pred, err := model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	rep := &Report{
		RunID:        runID,
		Name:         tbl.Name,
		Records:      len(tbl.Records),
		Defaulted:    tbl.Defaulted,
		Features:     append([]string(nil), dataset.FeatureNames...),
		Target:       dataset.TargetName,
		Coefficients: model.Coefficients(),
		Intercept:    model.Intercept(),
		Actual:       y,
		Predictions:  pred,
		sampleRows:   opt.SampleRows,
	}
	if rep.MAE, err = metrics.MAE(y, pred); err != nil {
		return nil, fmt.Errorf("mae: %w", err)
	}
	if rep.MSE, err = metrics.MSE(y, pred); err != nil {
		return nil, fmt.Errorf("mse: %w", err)
	}
	if rep.RSquared, err = metrics.RSquared(y, pred); err != nil {
		return nil, fmt.Errorf("r2: %w", err)
	}
	if rep.Correlations, err = metrics.Correlations(x, y); err != nil {
		return nil, fmt.Errorf("correlations: %w", err)
	}
	rep.Cols = summarize(x, y)

	if opt.Outliers {
		rep.Residual = residualOutliers(y, pred, opt.OutlierThreshold)
	}
	if tbl.Defaulted > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d non-numeric cells were read as 0", tbl.Defaulted))
	}
	if params := len(rep.Features) + 1; rep.Records < params {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("model is underdetermined: %d rows for %d parameters", rep.Records, params))
	}
	logger.Info().Float64("mae", rep.MAE).Float64("mse", rep.MSE).Msg("model evaluated")
	return rep, nil
}

// summarize returns one ColumnSummary per feature followed by the target.
func summarize(x mat.Matrix, y []float64) []ColumnSummary {
	_, cols := x.Dims()
	out := make([]ColumnSummary, 0, cols+1)
	for j := 0; j < cols; j++ {
		out = append(out, columnSummary(dataset.FeatureNames[j], mat.Col(nil, j, x)))
	}
	return append(out, columnSummary(dataset.TargetName, y))
}

func columnSummary(name string, v []float64) ColumnSummary {
	s := ColumnSummary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
	for _, x := range v {
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	mean, variance := stat.PopMeanVariance(v, nil)
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}

func residualOutliers(actual, predicted []float64, thr float64) ResidualSummary {
	if thr <= 0 {
		thr = 3.5
	}
	res := ResidualSummary{OutlierThreshold: thr}
	if len(actual) < 8 {
		return res
	}
	resid := make([]float64, len(actual))
	for i := range actual {
		resid[i] = actual[i] - predicted[i]
	}
	median, mad := medianMAD(resid)
	if mad <= 0 {
		return res
	}
	for _, v := range resid {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			res.OutliersCount++
		}
		if az > res.OutliersMaxAbsZ {
			res.OutliersMaxAbsZ = az
		}
	}
	return res
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
