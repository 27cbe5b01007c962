// Command wineml trains a gradient boosted tree model on the white wine
// quality data set, reports its accuracy, predicts the quality of one wine
// and ranks the features by how well each predicts quality on its own.
//
// Settings come from an optional wineml.yaml in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/wineml/internal/app"
	"github.com/YuminosukeSato/wineml/internal/config"
	"github.com/YuminosukeSato/wineml/pkg/log"
)

func main() {
	if err := run(); err != nil {
		log.GetLoggerWithName("main").Error("wineml failed", log.ErrAttrKey, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if err := log.SetupLogger(cfg.Logger.Level, cfg.Logger.Format, os.Stderr); err != nil {
		return err
	}
	return app.New(cfg, os.Stdout, os.Stdin).Run()
}
