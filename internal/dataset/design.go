package dataset

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoRecords is returned when a design matrix is requested for zero records.
var ErrNoRecords = errors.New("no player records")

// FeatureNames are the predictor columns of the design matrix, in order.
var FeatureNames = []string{"attack_wins", "defense_wins", "donations", "builder_trophies"}

// TargetName is the predicted column.
const TargetName = "trophies"

// Features returns the predictor values of r in FeatureNames order.
func (r Record) Features() []float64 {
	return []float64{
		float64(r.AttackWins),
		float64(r.DefenseWins),
		float64(r.Donations),
		float64(r.BuilderTrophies),
	}
}

// Design builds the feature matrix (one row per record) and the positionally
// paired target vector.
func Design(records []Record) (*mat.Dense, []float64, error) {
	if len(records) == 0 {
		return nil, nil, ErrNoRecords
	}
	cols := len(FeatureNames)
	data := make([]float64, 0, len(records)*cols)
	y := make([]float64, len(records))
	for i, r := range records {
		data = append(data, r.Features()...)
		y[i] = float64(r.Trophies)
	}
	return mat.NewDense(len(records), cols, data), y, nil
}
