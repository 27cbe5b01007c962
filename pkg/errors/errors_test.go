package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewParseError(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		line    int
		reason  string
		err     error
		wantMsg string
	}{
		{
			name:    "with line and cause",
			source:  "train.csv",
			line:    4,
			reason:  "wrong number of fields",
			err:     fmt.Errorf("expected 12, got 11"),
			wantMsg: "wineml: parse train.csv:4: wrong number of fields: expected 12, got 11",
		},
		{
			name:    "without line",
			source:  "train.csv",
			reason:  "missing header",
			wantMsg: "wineml: parse train.csv: missing header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewParseError(tt.source, tt.line, tt.reason, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var parseErr *ParseError
			if !As(err, &parseErr) {
				t.Fatal("Error should be castable to *ParseError")
			}
			if parseErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", parseErr.Line, tt.line)
			}
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("strconv failure")
	err := NewParseError("validate.csv", 2, "invalid number", cause)
	if !Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 11, 3, 1)

	want := "wineml: Predict: dimension mismatch on axis 1 (features). Expected 11, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestTypedErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		err := NewFileNotFoundError("Data/missing.csv")
		var target *FileNotFoundError
		if !As(err, &target) || target.Path != "Data/missing.csv" {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("training", func(t *testing.T) {
		err := NewTrainingError("Fit", "no rows")
		var target *TrainingError
		if !As(err, &target) {
			t.Fatalf("expected *TrainingError, got %T", err)
		}
		if got := err.Error(); got != "wineml: Fit: training failed: no rows" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("unknown feature", func(t *testing.T) {
		err := NewUnknownFeatureError("Colour", []string{"Alcohol"})
		var target *UnknownFeatureError
		if !As(err, &target) || target.Name != "Colour" {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrapped keeps type", func(t *testing.T) {
		err := Wrap(NewNotFittedError("FastTreeRegressor", "Predict"), "scenario failed")
		var target *NotFittedError
		if !As(err, &target) {
			t.Errorf("wrapped error lost its type: %v", err)
		}
	})
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(error) {})

	Warn(NewUndefinedMetricWarning("r2", "zero variance", math.NaN()))

	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "'r2' is ill-defined") {
		t.Errorf("unexpected warning text: %v", got[0])
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("ok", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckNumericalStability("nan", []float64{1, math.NaN()}, 7); err == nil {
		t.Error("expected error for NaN")
	}
	if err := CheckScalar("inf", math.Inf(1), 3); err == nil {
		t.Error("expected error for Inf")
	}
}
