package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// Transform is one step applied to a Frame in place.
type Transform interface {
	Apply(f *Frame) error
}

// CopyColumns copies the scalar column Input to Output.
type CopyColumns struct {
	Output string
	Input  string
}

// Apply implements Transform.
func (c CopyColumns) Apply(f *Frame) error {
	src, err := f.Column(c.Input)
	if err != nil {
		return errors.Wrapf(err, "copy %s to %s", c.Input, c.Output)
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return f.SetColumn(c.Output, dst)
}

// Concatenate joins scalar columns, in order, into the vector column Output.
type Concatenate struct {
	Output string
	Inputs []string
}

// Apply implements Transform.
func (c Concatenate) Apply(f *Frame) error {
	if len(c.Inputs) == 0 {
		return errors.NewValueError("Concatenate", "no input columns")
	}
	if f.Len() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "concatenate")
	}

	out := mat.NewDense(f.Len(), len(c.Inputs), nil)
	for j, name := range c.Inputs {
		col, err := f.Column(name)
		if err != nil {
			return errors.Wrapf(err, "concatenate %s", c.Output)
		}
		out.SetCol(j, col)
	}
	return f.SetVector(c.Output, out)
}
