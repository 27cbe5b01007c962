package fasttree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/core/model"
	"github.com/YuminosukeSato/wineml/metrics"
	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
)

// FastTreeRegressor is a gradient-boosted tree regressor with a
// scikit-learn style API.
type FastTreeRegressor struct {
	model.BaseEstimator

	Model  *Model
	Params TrainingParams

	// FeatureNames is copied into the trained model when set.
	FeatureNames []string

	nFeatures_ int
	nSamples_  int
}

// NewFastTreeRegressor creates a regressor with DefaultParams.
func NewFastTreeRegressor() *FastTreeRegressor {
	return &FastTreeRegressor{Params: DefaultParams()}
}

// WithParams replaces all hyperparameters.
func (r *FastTreeRegressor) WithParams(p TrainingParams) *FastTreeRegressor {
	r.Params = p
	return r
}

// WithNumTrees sets the number of boosting iterations
func (r *FastTreeRegressor) WithNumTrees(n int) *FastTreeRegressor {
	r.Params.NumTrees = n
	return r
}

// WithNumLeaves sets the maximum leaves per tree
func (r *FastTreeRegressor) WithNumLeaves(n int) *FastTreeRegressor {
	r.Params.NumLeaves = n
	return r
}

// WithMinDataInLeaf sets the minimum rows per leaf
func (r *FastTreeRegressor) WithMinDataInLeaf(n int) *FastTreeRegressor {
	r.Params.MinDataInLeaf = n
	return r
}

// WithLearningRate sets the shrinkage
func (r *FastTreeRegressor) WithLearningRate(lr float64) *FastTreeRegressor {
	r.Params.LearningRate = lr
	return r
}

// WithMaxDepth sets the maximum depth; 0 disables the limit
func (r *FastTreeRegressor) WithMaxDepth(d int) *FastTreeRegressor {
	r.Params.MaxDepth = d
	return r
}

// WithFeatureNames records column names for logging and importance reports.
func (r *FastTreeRegressor) WithFeatureNames(names []string) *FastTreeRegressor {
	r.FeatureNames = names
	return r
}

// Fit trains the regressor on X (n×d) and y (n×1).
func (r *FastTreeRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "FastTreeRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 {
		return errors.NewTrainingError("FastTreeRegressor.Fit", "no rows")
	}
	if yCols != 1 {
		return errors.NewDimensionError("FastTreeRegressor.Fit", 1, yCols, 1)
	}
	if rows != yRows {
		return errors.NewDimensionError("FastTreeRegressor.Fit", rows, yRows, 0)
	}
	if r.FeatureNames != nil && len(r.FeatureNames) != cols {
		return errors.NewDimensionError("FastTreeRegressor.Fit", len(r.FeatureNames), cols, 1)
	}
	if err := r.Params.Validate(); err != nil {
		return err
	}

	r.Reset()
	r.nFeatures_ = cols
	r.nSamples_ = rows

	logger := log.GetLoggerWithName("fasttree.regressor")
	logger.Debug("Training FastTreeRegressor",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.NumTreesKey, r.Params.NumTrees,
		log.NumLeavesKey, r.Params.NumLeaves,
		log.LearningRateKey, r.Params.LearningRate)

	target := make([]float64, rows)
	mat.Col(target, 0, y)

	trainer := NewTrainer(r.Params)
	if err := trainer.Fit(mat.DenseCopyOf(X), target); err != nil {
		return errors.Wrap(err, "fasttree: training failed")
	}

	r.Model = trainer.GetModel()
	r.Model.FeatureNames = r.FeatureNames
	r.SetFitted()

	logger.Debug("Training completed", "trees", len(r.Model.Trees))
	return nil
}

// Predict returns an n×1 matrix of predictions.
func (r *FastTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("FastTreeRegressor", "Predict")
	}

	_, cols := X.Dims()
	if cols != r.nFeatures_ {
		return nil, errors.NewDimensionError("FastTreeRegressor.Predict", r.nFeatures_, cols, 1)
	}
	return r.Model.Predict(X)
}

// Score returns the coefficient of determination R² of the prediction.
func (r *FastTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError("FastTreeRegressor", "Score")
	}

	predictions, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	yVec := mat.NewVecDense(rows, nil)
	predVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, predictions.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// GetFeatureImportance returns importance scores of the trained model.
func (r *FastTreeRegressor) GetFeatureImportance(importanceType string) ([]float64, error) {
	if !r.IsFitted() || r.Model == nil {
		return nil, errors.NewNotFittedError("FastTreeRegressor", "GetFeatureImportance")
	}
	return r.Model.FeatureImportance(importanceType)
}

// GetParams returns the hyperparameters.
func (r *FastTreeRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"num_trees":         r.Params.NumTrees,
		"num_leaves":        r.Params.NumLeaves,
		"min_data_in_leaf":  r.Params.MinDataInLeaf,
		"learning_rate":     r.Params.LearningRate,
		"max_bin":           r.Params.MaxBin,
		"max_depth":         r.Params.MaxDepth,
		"lambda":            r.Params.Lambda,
		"min_gain_to_split": r.Params.MinGainToSplit,
	}
}

var _ model.Regressor = (*FastTreeRegressor)(nil)
