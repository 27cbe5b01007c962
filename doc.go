// Package wineml predicts the quality of white wine from its physicochemical
// measurements with gradient boosted regression trees.
//
// The wineml command loads a training and a validation file, trains a model
// on all eleven measurements and reports its R² and RMSE, predicts the
// quality of one hand-picked wine, and finally trains one model per
// measurement to find the one that predicts quality best on its own.
//
// # Quick Start
//
// Put the data files in ./Data and run:
//
//	go run ./cmd/wineml
//
// The same steps are available as a library:
//
//	train, err := wine.Load("Data/winequality-white-train.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	validate, err := wine.Load("Data/winequality-white-validate.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b := pipeline.NewBuilder(fasttree.DefaultParams())
//	model, err := b.BuildModel(train, wine.AllFeatures())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := pipeline.Evaluate(model, validate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("R²:", m.RSquared)
//
// # Packages
//
//   - wine: data model and the ';' separated CSV loader
//   - sklearn/fasttree: histogram based gradient boosted trees for regression
//   - pipeline: feature assembly, training, evaluation and single predictions
//   - metrics: MSE, RMSE, MAE and R²
//   - ablation: single-feature scoring and the best-fit search
//   - core/model: estimator state and interfaces
//   - pkg/errors, pkg/log: error types and structured logging
//
// # Configuration
//
// An optional wineml.yaml in the working directory overrides the defaults:
//
//	data:
//	  dir: Data
//	trainer:
//	  num_trees: 100
//	  num_leaves: 20
//	  learning_rate: 0.2
//	log:
//	  level: info
//	  format: console
//	report:
//	  chart_path: ablation.png
//	console:
//	  wait_for_exit: false
package wineml
