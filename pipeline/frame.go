// Package pipeline turns wine datasets into trained models and scores them.
//
// A model is built the same way every time: the Quality column is copied to
// Label, the selected features are concatenated into a Features vector, and
// a FastTreeRegressor is fitted on (Features, Label). Applying the model to
// another dataset adds a Score column that Evaluate compares with Label.
package pipeline

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/wine"
)

// Column names produced by the pipeline.
const (
	LabelColumn    = "Label"
	FeaturesColumn = "Features"
	ScoreColumn    = "Score"
)

// Frame is a column store. Scalar columns hold one value per row; vector
// columns hold a row-aligned matrix.
type Frame struct {
	rows    int
	scalars map[string][]float64
	vectors map[string]*mat.Dense
}

// NewFrame creates an empty frame with a fixed row count.
func NewFrame(rows int) *Frame {
	return &Frame{
		rows:    rows,
		scalars: make(map[string][]float64),
		vectors: make(map[string]*mat.Dense),
	}
}

// FrameFromDataset creates a frame with one scalar column per schema column.
func FrameFromDataset(ds *wine.Dataset) *Frame {
	f := NewFrame(ds.Len())
	for _, name := range wine.Schema() {
		// schema names always resolve
		col, _ := ds.Column(name)
		f.scalars[name] = col
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// Names returns all column names in sorted order.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.scalars)+len(f.vectors))
	for n := range f.scalars {
		names = append(names, n)
	}
	for n := range f.vectors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Column returns a scalar column.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.scalars[name]
	if !ok {
		return nil, errors.NewValueError("Frame.Column", "no scalar column "+name)
	}
	return col, nil
}

// Vector returns a vector column.
func (f *Frame) Vector(name string) (*mat.Dense, error) {
	v, ok := f.vectors[name]
	if !ok {
		return nil, errors.NewValueError("Frame.Vector", "no vector column "+name)
	}
	return v, nil
}

// SetColumn adds or replaces a scalar column.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != f.rows {
		return errors.NewDimensionError("Frame.SetColumn", f.rows, len(values), 0)
	}
	delete(f.vectors, name)
	f.scalars[name] = values
	return nil
}

// SetVector adds or replaces a vector column.
func (f *Frame) SetVector(name string, values *mat.Dense) error {
	rows, _ := values.Dims()
	if rows != f.rows {
		return errors.NewDimensionError("Frame.SetVector", f.rows, rows, 0)
	}
	delete(f.scalars, name)
	f.vectors[name] = values
	return nil
}
