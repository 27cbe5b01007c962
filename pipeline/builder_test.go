package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
	"github.com/YuminosukeSato/wineml/sklearn/fasttree"
	"github.com/YuminosukeSato/wineml/wine"
)

// syntheticWines returns n samples whose quality follows alcohol, with a
// weaker contribution from volatile acidity.
func syntheticWines(n, offset int) *wine.Dataset {
	samples := make([]wine.WineSample, n)
	for i := range samples {
		k := i + offset
		alcohol := 8 + float64(k%50)*0.1
		acidity := 0.1 + float64((k*7)%13)*0.05
		samples[i] = wine.WineSample{
			FixedAcidity:       6 + float64(k%9)*0.2,
			VolatileAcidity:    acidity,
			CitricAcid:         0.3,
			ResidualSugar:      float64(k%17) * 0.8,
			Chlorides:          0.04,
			FreeSulfurDioxide:  float64(20 + k%30),
			TotalSulfurDioxide: float64(100 + k%80),
			Density:            0.99 + float64(k%11)*0.001,
			Ph:                 3 + float64(k%7)*0.05,
			Sulphates:          0.45,
			Alcohol:            alcohol,
			Quality:            math.Round(alcohol - 2 - acidity*2),
		}
	}
	return &wine.Dataset{Source: "synthetic", Samples: samples}
}

func testBuilder() *Builder {
	params := fasttree.DefaultParams()
	params.NumTrees = 30
	return NewBuilder(params)
}

func TestBuildModelAndEvaluate(t *testing.T) {
	train := syntheticWines(300, 0)
	validate := syntheticWines(100, 1000)

	model, err := testBuilder().BuildModel(train, wine.AllFeatures())
	require.NoError(t, err)
	assert.True(t, model.Regressor().IsFitted())
	assert.Equal(t, wine.FeatureNames(), model.Features().Names())

	m, err := Evaluate(model, validate)
	require.NoError(t, err)
	assert.Greater(t, m.RSquared, 0.7)
	assert.LessOrEqual(t, m.RSquared, 1.0)
	assert.Greater(t, m.RootMeanSquaredError, 0.0)
	assert.InDelta(t, math.Sqrt(m.MeanSquaredError), m.RootMeanSquaredError, 1e-12)
}

func TestBuildModelIsDeterministic(t *testing.T) {
	train := syntheticWines(200, 0)
	validate := syntheticWines(80, 500)
	b := testBuilder()

	first, err := b.BuildModel(train, wine.AllFeatures())
	require.NoError(t, err)
	second, err := b.BuildModel(train, wine.AllFeatures())
	require.NoError(t, err)

	m1, err := Evaluate(first, validate)
	require.NoError(t, err)
	m2, err := Evaluate(second, validate)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
}

func TestBuildModelErrors(t *testing.T) {
	train := syntheticWines(50, 0)

	t.Run("empty training set", func(t *testing.T) {
		_, err := testBuilder().BuildModel(&wine.Dataset{Source: "empty"}, wine.AllFeatures())
		var trErr *errors.TrainingError
		assert.True(t, errors.As(err, &trErr))
	})

	t.Run("nil training set", func(t *testing.T) {
		_, err := testBuilder().BuildModel(nil, wine.AllFeatures())
		var trErr *errors.TrainingError
		assert.True(t, errors.As(err, &trErr))
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := testBuilder().BuildModel(train, wine.FeatureSelection{})
		var vErr *errors.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("invalid params", func(t *testing.T) {
		params := fasttree.DefaultParams()
		params.NumLeaves = 1
		_, err := NewBuilder(params).BuildModel(train, wine.AllFeatures())
		var vErr *errors.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})
}

func TestPredictOne(t *testing.T) {
	train := syntheticWines(300, 0)
	model, err := testBuilder().BuildModel(train, wine.AllFeatures())
	require.NoError(t, err)

	row := train.Samples[42]
	got, err := PredictOne(model, row)
	require.NoError(t, err)
	assert.InDelta(t, row.Quality, got, 1.0)

	// the target field does not influence the prediction
	row.Quality = 100
	again, err := PredictOne(model, row)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSingleFeatureModel(t *testing.T) {
	train := syntheticWines(300, 0)
	validate := syntheticWines(100, 1000)

	sel, err := wine.NewFeatureSelection(wine.Alcohol)
	require.NoError(t, err)
	model, err := testBuilder().BuildModel(train, sel)
	require.NoError(t, err)

	frame, err := model.Transform(validate)
	require.NoError(t, err)
	X, err := frame.Vector(FeaturesColumn)
	require.NoError(t, err)
	_, cols := X.Dims()
	assert.Equal(t, 1, cols)

	scores, err := frame.Column(ScoreColumn)
	require.NoError(t, err)
	assert.Len(t, scores, validate.Len())
}

func TestTransformEmptyDataset(t *testing.T) {
	model, err := testBuilder().BuildModel(syntheticWines(50, 0), wine.AllFeatures())
	require.NoError(t, err)

	_, err = Evaluate(model, &wine.Dataset{})
	var vErr *errors.ValueError
	assert.True(t, errors.As(err, &vErr))
}

func TestBuildModelLogs(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	defer log.SetProvider(nil)

	_, err := testBuilder().BuildModel(syntheticWines(40, 0), wine.AllFeatures())
	require.NoError(t, err)

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("Model trained"))
	assert.True(t, logger.ContainsField(log.ComponentKey, "pipeline"))
	assert.True(t, logger.ContainsField(log.SourceKey, "synthetic"))
}
