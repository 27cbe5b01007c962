package fasttree

import (
	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// TrainingParams contains the boosting hyperparameters.
type TrainingParams struct {
	NumTrees      int     `json:"num_trees" mapstructure:"num_trees"`
	NumLeaves     int     `json:"num_leaves" mapstructure:"num_leaves"`
	MinDataInLeaf int     `json:"min_data_in_leaf" mapstructure:"min_data_in_leaf"`
	LearningRate  float64 `json:"learning_rate" mapstructure:"learning_rate"`
	MaxBin        int     `json:"max_bin" mapstructure:"max_bin"`

	// MaxDepth limits tree depth; 0 means no limit.
	MaxDepth int `json:"max_depth" mapstructure:"max_depth"`

	// Lambda is the L2 regularization applied to leaf values and split gain.
	Lambda         float64 `json:"lambda_l2" mapstructure:"lambda"`
	MinGainToSplit float64 `json:"min_gain_to_split" mapstructure:"min_gain_to_split"`
}

// bins are stored as uint16
const maxBinLimit = 1<<16 - 1

// DefaultParams returns the stock FastTree regression settings: 100 trees of
// 20 leaves, at least 10 rows per leaf, shrinkage 0.2 and 255 histogram bins.
func DefaultParams() TrainingParams {
	return TrainingParams{
		NumTrees:      100,
		NumLeaves:     20,
		MinDataInLeaf: 10,
		LearningRate:  0.2,
		MaxBin:        255,
	}
}

// Validate checks that the parameters can drive a training run.
func (p TrainingParams) Validate() error {
	switch {
	case p.NumTrees < 1:
		return errors.NewValidationError("num_trees", "must be at least 1", p.NumTrees)
	case p.NumLeaves < 2:
		return errors.NewValidationError("num_leaves", "must be at least 2", p.NumLeaves)
	case p.MinDataInLeaf < 1:
		return errors.NewValidationError("min_data_in_leaf", "must be at least 1", p.MinDataInLeaf)
	case p.LearningRate <= 0 || p.LearningRate > 1:
		return errors.NewValidationError("learning_rate", "must be in (0, 1]", p.LearningRate)
	case p.MaxBin < 2 || p.MaxBin > maxBinLimit:
		return errors.NewValidationError("max_bin", "must be in [2, 65535]", p.MaxBin)
	case p.MaxDepth < 0:
		return errors.NewValidationError("max_depth", "must be 0 (unlimited) or positive", p.MaxDepth)
	case p.Lambda < 0:
		return errors.NewValidationError("lambda", "must not be negative", p.Lambda)
	case p.MinGainToSplit < 0:
		return errors.NewValidationError("min_gain_to_split", "must not be negative", p.MinGainToSplit)
	}
	return nil
}
