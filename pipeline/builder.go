package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/metrics"
	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
	"github.com/YuminosukeSato/wineml/sklearn/fasttree"
	"github.com/YuminosukeSato/wineml/wine"
)

// Builder trains models with fixed hyperparameters.
type Builder struct {
	Params fasttree.TrainingParams
}

// NewBuilder creates a Builder. Pass fasttree.DefaultParams() for the stock
// trainer settings.
func NewBuilder(params fasttree.TrainingParams) *Builder {
	return &Builder{Params: params}
}

// FittedModel is a trained pipeline. It is not shared or cached; every
// BuildModel call trains a new one.
type FittedModel struct {
	features   wine.FeatureSelection
	transforms []Transform
	regressor  *fasttree.FastTreeRegressor
}

// Features returns the selection the model was trained on.
func (m *FittedModel) Features() wine.FeatureSelection {
	return m.features
}

// Regressor returns the underlying estimator.
func (m *FittedModel) Regressor() *fasttree.FastTreeRegressor {
	return m.regressor
}

func transformsFor(sel wine.FeatureSelection) []Transform {
	return []Transform{
		CopyColumns{Output: LabelColumn, Input: wine.Quality},
		Concatenate{Output: FeaturesColumn, Inputs: sel.Names()},
	}
}

// BuildModel trains a model on train using the selected features.
//
// It fails with *errors.TrainingError when train has no rows and with
// *errors.UnknownFeatureError or *errors.ValidationError for a bad selection.
func (b *Builder) BuildModel(train *wine.Dataset, sel wine.FeatureSelection) (*FittedModel, error) {
	start := time.Now()

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	for _, name := range sel.Names() {
		if !wine.IsFeature(name) {
			return nil, errors.NewUnknownFeatureError(name, wine.FeatureNames())
		}
	}
	if train.Len() == 0 {
		return nil, errors.NewTrainingError("BuildModel", "training set is empty")
	}

	logger := log.GetLoggerWithName("pipeline").With(
		log.ModelNameKey, "FastTreeRegressor",
		log.OperationKey, log.OperationFit,
	)

	frame := FrameFromDataset(train)
	transforms := transformsFor(sel)
	for _, t := range transforms {
		if err := t.Apply(frame); err != nil {
			return nil, err
		}
	}

	X, err := frame.Vector(FeaturesColumn)
	if err != nil {
		return nil, err
	}
	labels, err := frame.Column(LabelColumn)
	if err != nil {
		return nil, err
	}
	y := mat.NewDense(len(labels), 1, labels)

	reg := fasttree.NewFastTreeRegressor().
		WithParams(b.Params).
		WithFeatureNames(sel.Names())
	if err := reg.Fit(X, y); err != nil {
		return nil, err
	}

	logger.Info("Model trained",
		log.PhaseKey, log.PhaseTraining,
		log.SourceKey, train.Source,
		log.SamplesKey, train.Len(),
		log.FeatureNamesKey, sel.Names(),
		log.DurationMsKey, log.Since(start))

	return &FittedModel{features: sel, transforms: transforms, regressor: reg}, nil
}

// Transform applies the model to ds and returns a frame with Label,
// Features and Score columns.
func (m *FittedModel) Transform(ds *wine.Dataset) (*Frame, error) {
	if ds.Len() == 0 {
		return nil, errors.NewValueError("FittedModel.Transform", "dataset is empty")
	}

	frame := FrameFromDataset(ds)
	for _, t := range m.transforms {
		if err := t.Apply(frame); err != nil {
			return nil, err
		}
	}

	X, err := frame.Vector(FeaturesColumn)
	if err != nil {
		return nil, err
	}
	pred, err := m.regressor.Predict(X)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, frame.Len())
	mat.Col(scores, 0, pred)
	if err := frame.SetColumn(ScoreColumn, scores); err != nil {
		return nil, err
	}
	return frame, nil
}

// Evaluate scores model against the Quality values of ds.
func Evaluate(model *FittedModel, ds *wine.Dataset) (metrics.RegressionMetrics, error) {
	frame, err := model.Transform(ds)
	if err != nil {
		return metrics.RegressionMetrics{}, err
	}

	labels, err := frame.Column(LabelColumn)
	if err != nil {
		return metrics.RegressionMetrics{}, err
	}
	scores, err := frame.Column(ScoreColumn)
	if err != nil {
		return metrics.RegressionMetrics{}, err
	}

	result, err := metrics.Regression(
		mat.NewVecDense(len(labels), labels),
		mat.NewVecDense(len(scores), scores),
	)
	if err != nil {
		return metrics.RegressionMetrics{}, err
	}

	log.GetLoggerWithName("pipeline").Info("Model evaluated",
		log.OperationKey, log.OperationScore,
		log.PhaseKey, log.PhaseValidation,
		log.SourceKey, ds.Source,
		log.SamplesKey, ds.Len(),
		log.R2ScoreKey, result.RSquared,
		log.RMSEKey, result.RootMeanSquaredError)
	return result, nil
}

// PredictOne returns the predicted quality of sample. sample.Quality is
// not read.
func PredictOne(model *FittedModel, sample wine.WineSample) (float64, error) {
	sample.Quality = 0
	frame, err := model.Transform(&wine.Dataset{Source: "sample", Samples: []wine.WineSample{sample}})
	if err != nil {
		return 0, err
	}
	scores, err := frame.Column(ScoreColumn)
	if err != nil {
		return 0, err
	}

	log.GetLoggerWithName("pipeline").Debug("Sample predicted",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredictionKey, scores[0])
	return scores[0], nil
}
