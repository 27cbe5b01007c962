// Package model defines the estimator contracts shared by wineml trainers.
package model

// EstimatorState is the training state of an estimator.
type EstimatorState int

const (
	// NotFitted means Fit has not completed.
	NotFitted EstimatorState = iota
	// Fitted means the estimator can predict.
	Fitted
)

// BaseEstimator tracks the fitted state. Embed it in estimators.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether Fit has completed.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to NotFitted.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
