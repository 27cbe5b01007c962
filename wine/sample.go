package wine

import (
	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// WineSample is one row of a wine data file.
type WineSample struct {
	FixedAcidity       float64 `csv:"FixedAcidity" json:"fixed_acidity"`
	VolatileAcidity    float64 `csv:"VolatileAcidity" json:"volatile_acidity"`
	CitricAcid         float64 `csv:"CitricAcid" json:"citric_acid"`
	ResidualSugar      float64 `csv:"ResidualSugar" json:"residual_sugar"`
	Chlorides          float64 `csv:"Chlorides" json:"chlorides"`
	FreeSulfurDioxide  float64 `csv:"FreeSulfurDioxide" json:"free_sulfur_dioxide"`
	TotalSulfurDioxide float64 `csv:"TotalSulfurDioxide" json:"total_sulfur_dioxide"`
	Density            float64 `csv:"Density" json:"density"`
	Ph                 float64 `csv:"Ph" json:"ph"`
	Sulphates          float64 `csv:"Sulphates" json:"sulphates"`
	Alcohol            float64 `csv:"Alcohol" json:"alcohol"`

	// Quality is the regression target. It is ignored when predicting.
	Quality float64 `csv:"Quality" json:"quality"`
}

// Value returns the column called name.
func (s WineSample) Value(name string) (float64, error) {
	switch name {
	case FixedAcidity:
		return s.FixedAcidity, nil
	case VolatileAcidity:
		return s.VolatileAcidity, nil
	case CitricAcid:
		return s.CitricAcid, nil
	case ResidualSugar:
		return s.ResidualSugar, nil
	case Chlorides:
		return s.Chlorides, nil
	case FreeSulfurDioxide:
		return s.FreeSulfurDioxide, nil
	case TotalSulfurDioxide:
		return s.TotalSulfurDioxide, nil
	case Density:
		return s.Density, nil
	case Ph:
		return s.Ph, nil
	case Sulphates:
		return s.Sulphates, nil
	case Alcohol:
		return s.Alcohol, nil
	case Quality:
		return s.Quality, nil
	}
	return 0, errors.NewUnknownFeatureError(name, Schema())
}

// Features returns the selected columns in selection order.
func (s WineSample) Features(sel FeatureSelection) ([]float64, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, 0, sel.Len())
	for _, name := range sel.names {
		v, err := s.Value(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
