package analysis

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/trophyfit-cli/internal/dataset"
	"github.com/KaramelBytes/trophyfit-cli/internal/regression"
)

const header = "tag,name,townhall,xp,league,attack_wins,defense_wins,clan,role,war_stars,trophies,best,donations,received,builder_hall,builder_trophies"

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "CoC.csv")
	content := header + "\n" + strings.Join(rows, "\n")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// row builds a raw line with the given values at the default schema positions.
func row(attack, defense, trophies, donations, builder any) string {
	f := make([]string, 16)
	for i := range f {
		f[i] = "0"
	}
	f[5] = fmt.Sprint(attack)
	f[6] = fmt.Sprint(defense)
	f[10] = fmt.Sprint(trophies)
	f[12] = fmt.Sprint(donations)
	f[15] = fmt.Sprint(builder)
	return strings.Join(f, ",")
}

func TestRunTwoRowsFitsExactly(t *testing.T) {
	p := writeCSV(t,
		row(5, 3, 1000, 50, 10),
		row(8, 6, 1200, 60, 15),
	)
	rep, err := Run(p, regression.NewOLS(), DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "CoC.csv", rep.Name)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, []float64{1000, 1200}, rep.Actual)
	assert.InDeltaSlice(t, []float64{1000, 1200}, rep.Predictions, 1e-6)
	assert.InDelta(t, 0, rep.MAE, 1e-6)
	assert.InDelta(t, 0, rep.MSE, 1e-6)
	require.Len(t, rep.Correlations, len(dataset.FeatureNames))
	for _, c := range rep.Correlations {
		assert.InDelta(t, 1, c, 1e-12)
	}
	require.Len(t, rep.Coefficients, 4)
	require.Len(t, rep.Cols, 5)
	assert.Equal(t, "trophies", rep.Cols[4].Name)
	assert.InDelta(t, 1100, rep.Cols[4].Mean, 1e-12)
	assert.InDelta(t, 100, rep.Cols[4].Std, 1e-12)
	assert.Contains(t, rep.Warnings, "model is underdetermined: 2 rows for 5 parameters")
}

func TestRunConstantFeatureCorrelationIsZero(t *testing.T) {
	var rows []string
	for i := 0; i < 10; i++ {
		rows = append(rows, row(i, 4, 1000+37*i+(i%3)*11, 2*i+1, i*i))
	}
	rep, err := Run(writeCSV(t, rows...), regression.NewOLS(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.Correlations[1], "defense_wins is constant")
	assert.Greater(t, rep.Correlations[0], 0.9)
	assert.GreaterOrEqual(t, rep.MAE, 0.0)
	assert.False(t, math.IsNaN(rep.RSquared))
	assert.Equal(t, 3.5, rep.Residual.OutlierThreshold)
	assert.Empty(t, rep.Warnings)
}

func TestRunDefaultedCellsProduceWarning(t *testing.T) {
	p := writeCSV(t,
		row("abc", 3, 1000, 50, 10),
		row(8, 6, 1200, 60, 15),
	)
	rep, err := Run(p, regression.NewOLS(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Defaulted)
	assert.Contains(t, rep.Warnings, "1 non-numeric cells were read as 0")
}

func TestRunShortRowIsLoadError(t *testing.T) {
	p := writeCSV(t, row(5, 3, 1000, 50, 10), "invalid,data")
	_, err := Run(p, regression.NewOLS(), DefaultOptions())
	var le *dataset.LoadError
	require.True(t, errors.As(err, &le), "got %v", err)
}

func TestRunHeaderOnlyIsFitError(t *testing.T) {
	_, err := Run(writeCSV(t), regression.NewOLS(), DefaultOptions())
	var fe *regression.FitError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.ErrorIs(t, err, dataset.ErrNoRecords)
}

type failingFitter struct{}

func (failingFitter) Fit(mat.Matrix, []float64) (regression.Model, error) {
	return nil, errors.New("boom")
}

func TestRunWrapsForeignFitterErrors(t *testing.T) {
	p := writeCSV(t, row(5, 3, 1000, 50, 10))
	_, err := Run(p, failingFitter{}, DefaultOptions())
	var fe *regression.FitError
	require.True(t, errors.As(err, &fe))
	assert.EqualError(t, err, "fit model: boom")
}

type fixedFitter struct{ m regression.Model }

func (f fixedFitter) Fit(mat.Matrix, []float64) (regression.Model, error) { return f.m, nil }

func TestRunMetricsIndependentOfFitter(t *testing.T) {
	p := writeCSV(t,
		row(1, 0, 10, 0, 0),
		row(2, 0, 20, 0, 0),
		row(3, 0, 30, 0, 0),
	)
	// predicts attack_wins*10 + 1: every residual is -1
	m := regression.NewLinear([]float64{10, 0, 0, 0}, 1)
	rep, err := Run(p, fixedFitter{m}, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 1, rep.MAE, 1e-12)
	assert.InDelta(t, 1, rep.MSE, 1e-12)
}

func TestResidualOutliers(t *testing.T) {
	actual := []float64{10, 11, 9, 10, 12, 10, 11, 9, 10, 60}
	pred := make([]float64, len(actual))
	for i := range pred {
		pred[i] = 10
	}
	res := residualOutliers(actual, pred, 3.5)
	assert.Equal(t, 1, res.OutliersCount)
	assert.Greater(t, res.OutliersMaxAbsZ, 3.5)

	res = residualOutliers(actual[:4], pred[:4], 0)
	assert.Zero(t, res.OutliersCount)
	assert.Equal(t, 3.5, res.OutlierThreshold)
}

func TestQuantileAndMAD(t *testing.T) {
	median, mad := medianMAD([]float64{1, 2, 3, 4, 100})
	assert.Equal(t, 3.0, median)
	assert.Equal(t, 1.0, mad)
	assert.Equal(t, 2.5, quantile([]float64{1, 2, 3, 4}, 0.5))
}
