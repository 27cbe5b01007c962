// Package metrics provides regression quality metrics.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// RegressionMetrics is the result of evaluating a regressor on labelled data.
type RegressionMetrics struct {
	MeanAbsoluteError    float64 `json:"mean_absolute_error"`
	MeanSquaredError     float64 `json:"mean_squared_error"`
	RootMeanSquaredError float64 `json:"root_mean_squared_error"`
	RSquared             float64 `json:"r_squared"`
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MSEMatrix computes the mean squared error of two n×1 matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnVectors("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination 1 - RSS/TSS.
//
// When yTrue has no variance the ratio is undefined. The score is then 1 if
// every prediction is exact and NaN otherwise, and an UndefinedMetricWarning
// is raised through errors.Warn in both cases.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		if rss == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "constant labels with exact predictions", 1))
			return 1, nil
		}
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "constant labels", math.NaN()))
		return math.NaN(), nil
	}

	return 1 - rss/tss, nil
}

// Regression computes every regression metric at once.
func Regression(yTrue, yPred *mat.VecDense) (RegressionMetrics, error) {
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, err
	}
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, err
	}
	return RegressionMetrics{
		MeanAbsoluteError:    mae,
		MeanSquaredError:     mse,
		RootMeanSquaredError: math.Sqrt(mse),
		RSquared:             r2,
	}, nil
}

// RegressionMatrix is Regression for n×1 matrices.
func RegressionMatrix(yTrue, yPred mat.Matrix) (RegressionMetrics, error) {
	t, p, err := columnVectors("RegressionMatrix", yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, err
	}
	return Regression(t, p)
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

func columnVectors(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	t := mat.NewVecDense(rTrue, nil)
	p := mat.NewVecDense(rPred, nil)
	for i := 0; i < rTrue; i++ {
		t.SetVec(i, yTrue.At(i, 0))
		p.SetVec(i, yPred.At(i, 0))
	}
	return t, p, nil
}
