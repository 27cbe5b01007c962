// Standard attribute keys for wineml log records.
//
// Keys follow a dotted hierarchy ("model.name", "data.samples") so that log
// records from different components can be filtered the same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "FastTreeRegressor".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: fit, predict, score.
	OperationKey = "ml.operation"

	// ComponentKey is set by GetLoggerWithName.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: training, validation, inference.
	PhaseKey = "ml.phase"

	// ScenarioKey names the driver scenario that emitted the record.
	ScenarioKey = "app.scenario"
)

// Data shape.
const (
	// SamplesKey is the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// FeatureNamesKey lists the selected feature names.
	FeatureNamesKey = "data.feature_names"

	// SourceKey is the file a dataset was read from.
	SourceKey = "data.source"

	// DataSizeKey is a human-readable file size.
	DataSizeKey = "data.size"
)

// Metrics and timing.
const (
	// DurationMsKey is the elapsed time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey is the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// RMSEKey is the root mean squared error.
	RMSEKey = "metrics.rmse"

	// LossKey is the training loss.
	LossKey = "metrics.loss"

	// IterationKey is the boosting iteration.
	IterationKey = "training.iteration"

	// PredictionKey is a single predicted value.
	PredictionKey = "preds.value"
)

// Hyperparameters.
const (
	NumTreesKey     = "hyperparams.num_trees"
	NumLeavesKey    = "hyperparams.num_leaves"
	LearningRateKey = "hyperparams.learning_rate"
)

// Standard values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationLoad     = "load"
	OperationAblation = "ablation"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"
)
