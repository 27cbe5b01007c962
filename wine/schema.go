// Package wine holds the wine-quality data model and its CSV loader.
//
// A data file is a ';' separated table with a header row followed by one row
// per wine: eleven physicochemical measurements and the quality score given
// by tasters. Columns are bound by position, so files whose header uses
// other spellings (for example "fixed acidity") load the same way.
package wine

import (
	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// Column names, in file order.
const (
	FixedAcidity       = "FixedAcidity"
	VolatileAcidity    = "VolatileAcidity"
	CitricAcid         = "CitricAcid"
	ResidualSugar      = "ResidualSugar"
	Chlorides          = "Chlorides"
	FreeSulfurDioxide  = "FreeSulfurDioxide"
	TotalSulfurDioxide = "TotalSulfurDioxide"
	Density            = "Density"
	Ph                 = "Ph"
	Sulphates          = "Sulphates"
	Alcohol            = "Alcohol"
	Quality            = "Quality"
)

// Separator is the column delimiter of wine data files.
const Separator = ';'

var columns = []string{
	FixedAcidity,
	VolatileAcidity,
	CitricAcid,
	ResidualSugar,
	Chlorides,
	FreeSulfurDioxide,
	TotalSulfurDioxide,
	Density,
	Ph,
	Sulphates,
	Alcohol,
	Quality,
}

// NumFeatures is the number of input measurements per sample.
const NumFeatures = 11

// Schema returns every column name in file order, target last.
func Schema() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// FeatureNames returns the eleven feature columns in file order.
func FeatureNames() []string {
	out := make([]string, NumFeatures)
	copy(out, columns[:NumFeatures])
	return out
}

// IsFeature reports whether name is one of the feature columns.
func IsFeature(name string) bool {
	for _, c := range columns[:NumFeatures] {
		if c == name {
			return true
		}
	}
	return false
}

// FeatureSelection is a non-empty ordered list of feature names. It decides
// which columns are concatenated into the model input and in which order.
type FeatureSelection struct {
	names []string
}

// NewFeatureSelection validates names against the schema. Duplicates are
// kept as given.
func NewFeatureSelection(names ...string) (FeatureSelection, error) {
	if len(names) == 0 {
		return FeatureSelection{}, errors.NewValidationError("features", "at least one feature is required", names)
	}
	for _, n := range names {
		if !IsFeature(n) {
			return FeatureSelection{}, errors.NewUnknownFeatureError(n, FeatureNames())
		}
	}
	out := make([]string, len(names))
	copy(out, names)
	return FeatureSelection{names: out}, nil
}

// AllFeatures selects every feature in schema order.
func AllFeatures() FeatureSelection {
	return FeatureSelection{names: FeatureNames()}
}

// Names returns the selected feature names in order.
func (s FeatureSelection) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of selected features.
func (s FeatureSelection) Len() int {
	return len(s.names)
}

// Validate reports an error for the zero FeatureSelection.
func (s FeatureSelection) Validate() error {
	if len(s.names) == 0 {
		return errors.NewValidationError("features", "at least one feature is required", s.names)
	}
	return nil
}
