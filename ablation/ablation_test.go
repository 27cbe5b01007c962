package ablation

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/wineml/pipeline"
	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/sklearn/fasttree"
	"github.com/YuminosukeSato/wineml/wine"
)

// alcoholWines returns samples whose quality depends on alcohol only; pH
// cycles independently of it.
func alcoholWines(n, offset int) *wine.Dataset {
	samples := make([]wine.WineSample, n)
	for i := range samples {
		k := i + offset
		alcohol := 8 + float64(k%40)*0.1
		samples[i] = wine.WineSample{
			Alcohol: alcohol,
			Ph:      3 + float64((k*7)%11)*0.03,
			Quality: math.Floor(alcohol - 2),
		}
	}
	return &wine.Dataset{Source: "alcohol", Samples: samples}
}

func testBuilder() *pipeline.Builder {
	params := fasttree.DefaultParams()
	params.NumTrees = 20
	return pipeline.NewBuilder(params)
}

func TestRun(t *testing.T) {
	train := alcoholWines(200, 0)
	validate := alcoholWines(80, 500)

	var started, scored []string
	progress := Progress{
		Started: func(name string) { started = append(started, name) },
		Scored:  func(name string, r2 float64) { scored = append(scored, name) },
	}

	features := []string{wine.Ph, wine.Alcohol}
	scores, err := Run(testBuilder(), train, validate, features, progress)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, features, started)
	assert.Equal(t, features, scored)
	assert.Equal(t, wine.Ph, scores[0].Feature)
	assert.Equal(t, wine.Alcohol, scores[1].Feature)
	assert.Greater(t, scores[1].RSquared, scores[0].RSquared)

	best, err := Best(scores)
	require.NoError(t, err)
	assert.Equal(t, wine.Alcohol, best.Feature)
	for _, s := range scores {
		assert.GreaterOrEqual(t, best.RSquared, s.RSquared)
	}
}

func TestRunStopsOnError(t *testing.T) {
	var started []string
	progress := Progress{Started: func(name string) { started = append(started, name) }}

	_, err := Run(testBuilder(), alcoholWines(50, 0), alcoholWines(20, 100),
		[]string{wine.Alcohol, "Colour", wine.Ph}, progress)
	var uf *errors.UnknownFeatureError
	require.True(t, errors.As(err, &uf))
	assert.Equal(t, []string{wine.Alcohol, "Colour"}, started)
}

func TestRunEmptyTrainingSet(t *testing.T) {
	_, err := Run(testBuilder(), &wine.Dataset{}, alcoholWines(20, 0), []string{wine.Alcohol}, Progress{})
	var trErr *errors.TrainingError
	assert.True(t, errors.As(err, &trErr))
}

func TestRunNoFeatures(t *testing.T) {
	_, err := Run(testBuilder(), alcoholWines(20, 0), alcoholWines(20, 0), nil, Progress{})
	assert.Error(t, err)
}

func TestBest(t *testing.T) {
	tests := []struct {
		name   string
		scores []FeatureScore
		want   string
	}{
		{
			name:   "single",
			scores: []FeatureScore{{Feature: "A", RSquared: 0.1}},
			want:   "A",
		},
		{
			name: "maximum",
			scores: []FeatureScore{
				{Feature: "A", RSquared: 0.1},
				{Feature: "B", RSquared: 0.3},
				{Feature: "C", RSquared: 0.2},
			},
			want: "B",
		},
		{
			name: "tie keeps first",
			scores: []FeatureScore{
				{Feature: "A", RSquared: 0.1},
				{Feature: "B", RSquared: 0.3},
				{Feature: "C", RSquared: 0.3},
			},
			want: "B",
		},
		{
			name: "negative scores",
			scores: []FeatureScore{
				{Feature: "A", RSquared: -0.5},
				{Feature: "B", RSquared: -0.1},
			},
			want: "B",
		},
		{
			name: "NaN never wins",
			scores: []FeatureScore{
				{Feature: "A", RSquared: math.NaN()},
				{Feature: "B", RSquared: -2},
				{Feature: "C", RSquared: math.NaN()},
			},
			want: "B",
		},
		{
			name: "all NaN",
			scores: []FeatureScore{
				{Feature: "A", RSquared: math.NaN()},
				{Feature: "B", RSquared: math.NaN()},
			},
			want: "A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Best(tt.scores)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Feature)
		})
	}
}

func TestBestEmpty(t *testing.T) {
	_, err := Best(nil)
	var vErr *errors.ValueError
	assert.True(t, errors.As(err, &vErr))
}

func TestWriteChart(t *testing.T) {
	scores := []FeatureScore{
		{Feature: wine.Alcohol, RSquared: 0.19},
		{Feature: wine.Density, RSquared: 0.12},
		{Feature: wine.Ph, RSquared: -0.01},
		{Feature: wine.Chlorides, RSquared: math.NaN()},
	}

	for _, name := range []string{"ablation.png", "ablation.svg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteChart(path, scores))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestWriteChartErrors(t *testing.T) {
	assert.Error(t, WriteChart(filepath.Join(t.TempDir(), "empty.png"), nil))

	scores := []FeatureScore{{Feature: wine.Alcohol, RSquared: 0.2}}
	assert.Error(t, WriteChart(filepath.Join(t.TempDir(), "chart.unknown"), scores))
}
