// Package app runs the wineml console scenarios: train and evaluate on all
// features, predict one wine, and find the single most predictive feature.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/wineml/ablation"
	"github.com/YuminosukeSato/wineml/internal/config"
	"github.com/YuminosukeSato/wineml/internal/console"
	"github.com/YuminosukeSato/wineml/metrics"
	"github.com/YuminosukeSato/wineml/pipeline"
	"github.com/YuminosukeSato/wineml/pkg/log"
	"github.com/YuminosukeSato/wineml/wine"
)

// Title is the banner text.
const Title = "Tasting wine with Go"

// DefaultSample is the wine whose quality is predicted. Tasters rated
// similar wines 6.
var DefaultSample = wine.WineSample{
	FixedAcidity:       7.6,
	VolatileAcidity:    0.17,
	CitricAcid:         0.27,
	ResidualSugar:      4.6,
	Chlorides:          0.05,
	FreeSulfurDioxide:  23,
	TotalSulfurDioxide: 98,
	Density:            0.99422,
	Ph:                 3.08,
	Sulphates:          0.47,
	Alcohol:            9.5,
}

// App holds what one run needs. Models are never shared between scenarios:
// each one trains its own.
type App struct {
	cfg     *config.Config
	out     io.Writer
	in      io.Reader
	builder *pipeline.Builder
	sample  wine.WineSample
}

// New creates an App that prints to out and, when the config asks for it,
// waits for Enter on in before returning.
func New(cfg *config.Config, out io.Writer, in io.Reader) *App {
	return &App{
		cfg:     cfg,
		out:     out,
		in:      in,
		builder: pipeline.NewBuilder(cfg.Trainer),
		sample:  DefaultSample,
	}
}

// WithSample replaces the wine used by the prediction scenario.
func (a *App) WithSample(s wine.WineSample) *App {
	a.sample = s
	return a
}

// Run executes all scenarios in order. The first error stops the run; lines
// already printed are left as they are.
func (a *App) Run() error {
	start := time.Now()
	logger := log.GetLoggerWithName("app")

	console.PrintHeader(a.out, Title)

	var train, validate *wine.Dataset
	if err := a.step("Load training data", func() (err error) {
		train, err = wine.Load(a.cfg.Data.TrainPath())
		return err
	}); err != nil {
		return err
	}
	if err := a.step("Load validation data", func() (err error) {
		validate, err = wine.Load(a.cfg.Data.ValidatePath())
		return err
	}); err != nil {
		return err
	}
	fmt.Fprint(a.out, "\n\n")

	fmt.Fprintln(a.out, "**** TRAIN AND EVALUATE MODEL WITH ALL FEATURES *****")
	if _, err := a.TrainAndEvaluate(train, validate); err != nil {
		return err
	}
	fmt.Fprint(a.out, "\n\n")

	fmt.Fprintln(a.out, "**** PREDICT QUALITY OF THE SELECTED WINE *****")
	if _, err := a.PredictSample(train); err != nil {
		return err
	}
	fmt.Fprint(a.out, "\n\n")

	fmt.Fprintln(a.out, "**** FIND THE BEST FIT TO FIND A GOOD WINE  *****")
	if _, err := a.FindBestFit(train, validate); err != nil {
		return err
	}

	logger.Info("Run completed", log.DurationMsKey, log.Since(start))

	if a.cfg.Console.WaitForExit {
		fmt.Fprintln(a.out, "Press Enter / Return to exit...")
		return console.WaitForEnter(a.in)
	}
	return nil
}

// TrainAndEvaluate trains on every feature and prints R² and RMSE on the
// validation set.
func (a *App) TrainAndEvaluate(train, validate *wine.Dataset) (metrics.RegressionMetrics, error) {
	var model *pipeline.FittedModel
	if err := a.step("Train model", func() (err error) {
		model, err = a.builder.BuildModel(train, wine.AllFeatures())
		return err
	}); err != nil {
		return metrics.RegressionMetrics{}, err
	}

	var m metrics.RegressionMetrics
	if err := a.step("Validate model", func() (err error) {
		m, err = pipeline.Evaluate(model, validate)
		return err
	}); err != nil {
		return metrics.RegressionMetrics{}, err
	}

	fmt.Fprintf(a.out, "RSquared Score: %s\n", console.FormatScore(m.RSquared))
	fmt.Fprintf(a.out, "Root Mean Squared Error: %s\n", console.FormatOptionalInteger(m.RootMeanSquaredError))
	return m, nil
}

// PredictSample trains on every feature and prints the predicted quality of
// the configured sample.
func (a *App) PredictSample(train *wine.Dataset) (float64, error) {
	var model *pipeline.FittedModel
	if err := a.step("Train model", func() (err error) {
		model, err = a.builder.BuildModel(train, wine.AllFeatures())
		return err
	}); err != nil {
		return 0, err
	}

	fmt.Fprint(a.out, "Predicting quality...")
	quality, err := pipeline.PredictOne(model, a.sample)
	if err != nil {
		fmt.Fprintln(a.out)
		return 0, err
	}
	fmt.Fprintln(a.out, console.FormatScore(quality))

	log.GetLoggerWithName("app").Info("Sample predicted",
		log.ScenarioKey, "predict",
		log.PredictionKey, quality)
	return quality, nil
}

// FindBestFit scores a model per feature and prints the best one. When a
// chart path is configured the scores are also drawn as a bar chart.
func (a *App) FindBestFit(train, validate *wine.Dataset) (ablation.FeatureScore, error) {
	logger := log.GetLoggerWithName("app").With(log.ScenarioKey, "best_fit")

	progress := ablation.Progress{
		Started: func(feature string) {
			fmt.Fprintf(a.out, "Calculate RSquared for %s... ", feature)
		},
		Scored: func(_ string, r2 float64) {
			fmt.Fprintln(a.out, console.FormatScore(r2))
		},
	}

	scores, err := ablation.Run(a.builder, train, validate, wine.FeatureNames(), progress)
	if err != nil {
		fmt.Fprintln(a.out)
		return ablation.FeatureScore{}, err
	}

	best, err := ablation.Best(scores)
	if err != nil {
		return ablation.FeatureScore{}, err
	}
	fmt.Fprintf(a.out, "Best fit for finding a good wine: %s with a RSquared of %s\n",
		best.Feature, console.FormatScore(best.RSquared))

	if path := a.cfg.Report.ChartPath; path != "" {
		if err := ablation.WriteChart(path, scores); err != nil {
			return ablation.FeatureScore{}, err
		}
		logger.Info("Chart written", "path", path)
	}
	return best, nil
}

// step prints "label...", runs fn and completes the line with DONE!.
func (a *App) step(label string, fn func() error) error {
	fmt.Fprintf(a.out, "%s...", label)
	if err := fn(); err != nil {
		fmt.Fprintln(a.out)
		return err
	}
	fmt.Fprintln(a.out, "DONE!")
	return nil
}
