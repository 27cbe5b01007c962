// Package ablation ranks features by how well a model trained on that one
// feature alone predicts wine quality.
package ablation

import (
	"math"

	"github.com/YuminosukeSato/wineml/pipeline"
	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
	"github.com/YuminosukeSato/wineml/wine"
)

// FeatureScore is the validation result of a single-feature model.
type FeatureScore struct {
	Feature              string  `json:"feature"`
	RSquared             float64 `json:"r_squared"`
	RootMeanSquaredError float64 `json:"root_mean_squared_error"`
}

// Progress receives per-feature notifications. Either field may be nil.
type Progress struct {
	// Started is called before the model for feature is trained.
	Started func(feature string)
	// Scored is called once the model for feature has been evaluated.
	Scored func(feature string, r2 float64)
}

// Run trains and evaluates one model per feature, in the given order. The
// first failure stops the run; scores gathered so far are discarded.
func Run(b *pipeline.Builder, train, validate *wine.Dataset, features []string, progress Progress) ([]FeatureScore, error) {
	if len(features) == 0 {
		return nil, errors.NewValueError("ablation.Run", "no features to evaluate")
	}

	logger := log.GetLoggerWithName("ablation")
	scores := make([]FeatureScore, 0, len(features))

	for _, name := range features {
		if progress.Started != nil {
			progress.Started(name)
		}

		sel, err := wine.NewFeatureSelection(name)
		if err != nil {
			return nil, err
		}
		model, err := b.BuildModel(train, sel)
		if err != nil {
			return nil, errors.Wrapf(err, "ablation: train on %s", name)
		}
		m, err := pipeline.Evaluate(model, validate)
		if err != nil {
			return nil, errors.Wrapf(err, "ablation: evaluate %s", name)
		}

		score := FeatureScore{
			Feature:              name,
			RSquared:             m.RSquared,
			RootMeanSquaredError: m.RootMeanSquaredError,
		}
		scores = append(scores, score)

		logger.Debug("Feature scored",
			log.OperationKey, log.OperationAblation,
			"feature", name,
			log.R2ScoreKey, score.RSquared,
			log.RMSEKey, score.RootMeanSquaredError)

		if progress.Scored != nil {
			progress.Scored(name, score.RSquared)
		}
	}
	return scores, nil
}

// Best returns the score with the highest R². On ties the earliest entry
// wins. NaN scores never win unless every score is NaN, in which case the
// first entry is returned.
func Best(scores []FeatureScore) (FeatureScore, error) {
	if len(scores) == 0 {
		return FeatureScore{}, errors.NewValueError("ablation.Best", "no scores")
	}

	best := -1
	for i, s := range scores {
		if math.IsNaN(s.RSquared) {
			continue
		}
		if best < 0 || s.RSquared > scores[best].RSquared {
			best = i
		}
	}
	if best < 0 {
		return scores[0], nil
	}
	return scores[best], nil
}
