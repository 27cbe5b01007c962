// Package config loads wineml settings. Every key has a default, so the
// program runs without a config file; an optional wineml.yaml in the working
// directory overrides individual keys.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/sklearn/fasttree"
)

// FileName is the config file base name looked up in the search directory.
const FileName = "wineml"

type Config struct {
	Data    DataConfig
	Trainer fasttree.TrainingParams
	Logger  LoggerConfig
	Report  ReportConfig
	Console ConsoleConfig
}

type DataConfig struct {
	Dir          string
	TrainFile    string
	ValidateFile string
}

// TrainPath is the training data file.
func (d DataConfig) TrainPath() string {
	return filepath.Join(d.Dir, d.TrainFile)
}

// ValidatePath is the validation data file.
func (d DataConfig) ValidatePath() string {
	return filepath.Join(d.Dir, d.ValidateFile)
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ReportConfig struct {
	// ChartPath is where the ablation chart is written; empty disables it.
	ChartPath string
}

type ConsoleConfig struct {
	WaitForExit bool
}

func setDefaults(v *viper.Viper) {
	d := fasttree.DefaultParams()

	v.SetDefault("data.dir", "Data")
	v.SetDefault("data.train_file", "winequality-white-train.csv")
	v.SetDefault("data.validate_file", "winequality-white-validate.csv")

	v.SetDefault("trainer.num_trees", d.NumTrees)
	v.SetDefault("trainer.num_leaves", d.NumLeaves)
	v.SetDefault("trainer.min_data_in_leaf", d.MinDataInLeaf)
	v.SetDefault("trainer.learning_rate", d.LearningRate)
	v.SetDefault("trainer.max_bin", d.MaxBin)
	v.SetDefault("trainer.max_depth", d.MaxDepth)
	v.SetDefault("trainer.lambda", d.Lambda)
	v.SetDefault("trainer.min_gain_to_split", d.MinGainToSplit)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "json")

	v.SetDefault("report.chart_path", "")
	v.SetDefault("console.wait_for_exit", true)
}

// Load reads wineml.yaml from dir when present and applies defaults for
// everything else. A malformed file or invalid trainer settings are errors.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "config: read wineml.yaml")
		}
	}

	cfg := &Config{
		Data: DataConfig{
			Dir:          v.GetString("data.dir"),
			TrainFile:    v.GetString("data.train_file"),
			ValidateFile: v.GetString("data.validate_file"),
		},
		Trainer: fasttree.TrainingParams{
			NumTrees:       v.GetInt("trainer.num_trees"),
			NumLeaves:      v.GetInt("trainer.num_leaves"),
			MinDataInLeaf:  v.GetInt("trainer.min_data_in_leaf"),
			LearningRate:   v.GetFloat64("trainer.learning_rate"),
			MaxBin:         v.GetInt("trainer.max_bin"),
			MaxDepth:       v.GetInt("trainer.max_depth"),
			Lambda:         v.GetFloat64("trainer.lambda"),
			MinGainToSplit: v.GetFloat64("trainer.min_gain_to_split"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Report: ReportConfig{
			ChartPath: v.GetString("report.chart_path"),
		},
		Console: ConsoleConfig{
			WaitForExit: v.GetBool("console.wait_for_exit"),
		},
	}

	if err := cfg.Trainer.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
