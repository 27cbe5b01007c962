package ablation

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/wineml/pkg/errors"
)

// WriteChart saves a bar chart of R² per feature. The image format follows
// the file extension (.png, .svg, .pdf, ...). NaN scores are drawn as zero.
func WriteChart(path string, scores []FeatureScore) error {
	if len(scores) == 0 {
		return errors.NewValueError("ablation.WriteChart", "no scores")
	}

	values := make(plotter.Values, len(scores))
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Feature
		if !math.IsNaN(s.RSquared) {
			values[i] = s.RSquared
		}
	}

	p := plot.New()
	p.Title.Text = "RSquared per feature"
	p.Y.Label.Text = "RSquared"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "ablation: build bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "ablation: save chart %s", path)
	}
	return nil
}
