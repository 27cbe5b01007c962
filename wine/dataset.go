package wine

import (
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// Dataset is a fully loaded data file. It is not modified after loading.
type Dataset struct {
	// Source names where the rows came from, usually the file path.
	Source  string
	Samples []WineSample
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Samples)
}

// Column returns one column across all samples.
func (d *Dataset) Column(name string) ([]float64, error) {
	if !IsFeature(name) && name != Quality {
		return nil, errors.NewUnknownFeatureError(name, Schema())
	}
	out := make([]float64, d.Len())
	for i := range out {
		out[i], _ = d.Samples[i].Value(name)
	}
	return out, nil
}

// Labels returns the Quality column.
func (d *Dataset) Labels() []float64 {
	out := make([]float64, d.Len())
	for i := range out {
		out[i] = d.Samples[i].Quality
	}
	return out
}

// Write serializes the dataset as ';' separated CSV with the canonical
// header. Reading the output back yields the same samples.
func (d *Dataset) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	samples := d.Samples
	if samples == nil {
		samples = []WineSample{}
	}
	if err := gocsv.MarshalCSV(&samples, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return errors.Wrapf(err, "wine: write %s", d.Source)
	}
	return nil
}
