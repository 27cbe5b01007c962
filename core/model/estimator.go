package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that learns from (X, y).
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that produces one prediction per row of X.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer computes R² against known targets.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// ParameterGetter exposes hyperparameters for logging.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// Regressor is what the pipeline needs from a trainer.
type Regressor interface {
	Fitter
	Predictor
	Scorer
	ParameterGetter
	IsFitted() bool
}
