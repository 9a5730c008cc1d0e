package forecast

import (
	"errors"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/couchcryptid/weather-intel-service/internal/features"
)

// ridgeLambda is the regularization strength of the learned regressor. Kept
// small: it exists to keep the normal equations solvable when calendar
// encodings are nearly collinear over short windows, not to shrink fits.
const ridgeLambda = 1e-3

var errNoTrainingRows = errors.New("no training rows with target values")

// ridgeRegressor is the learned estimator: a ridge regression over the
// merged feature table, trained against the target variable's value column.
type ridgeRegressor struct {
	columns []string  // feature columns, fixed at fit time
	weights []float64 // len(columns)+1; index 0 is the intercept
}

// featureColumns selects the regressor's input columns: everything except
// the target variable's own columns.
func featureColumns(table *features.Table, targetVariable string) []string {
	cols := make([]string, 0, len(table.Columns()))
	for _, name := range table.Columns() {
		if strings.HasPrefix(name, targetVariable) {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

// fitRidge trains the regressor on all rows where the target value is
// present. NaN feature cells are zero-filled.
func fitRidge(table *features.Table, targetVariable string) (*ridgeRegressor, error) {
	target, ok := table.Column(targetVariable + "_value")
	if !ok {
		return nil, errors.New("target value column missing")
	}

	cols := featureColumns(table, targetVariable)
	if len(cols) == 0 {
		return nil, errors.New("no feature columns")
	}

	var rows []int
	for i, v := range target {
		if !math.IsNaN(v) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, errNoTrainingRows
	}

	// Design matrix with a leading intercept column.
	p := len(cols) + 1
	x := mat.NewDense(len(rows), p, nil)
	y := make([]float64, len(rows))
	for r, row := range rows {
		x.Set(r, 0, 1)
		for c, name := range cols {
			v := table.At(name, row)
			if math.IsNaN(v) {
				v = 0
			}
			x.Set(r, c+1, v)
		}
		y[r] = target[row]
	}

	// Normal equations with a ridge term: (X'X + λI)w = X'y.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < p; i++ {
		xtx.Set(i, i, xtx.At(i, i)+ridgeLambda)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), mat.NewVecDense(len(y), y))

	var w mat.VecDense
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return nil, err
	}

	weights := make([]float64, p)
	for i := 0; i < p; i++ {
		weights[i] = w.AtVec(i)
	}
	return &ridgeRegressor{columns: cols, weights: weights}, nil
}

// predict evaluates the fit on one feature row. Missing or NaN features are
// zero-filled before prediction.
func (r *ridgeRegressor) predict(row map[string]float64) float64 {
	sum := r.weights[0]
	for i, name := range r.columns {
		v, ok := row[name]
		if !ok || math.IsNaN(v) {
			v = 0
		}
		sum += r.weights[i+1] * v
	}
	return sum
}
