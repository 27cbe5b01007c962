// Package errors provides the error types and warning hooks used across wineml.
// Every constructor attaches a stack trace through cockroachdb/errors so that
// the log handler can print where a failure originated.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("wineml-warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the handler used by Warn.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a structured warning sink. It takes precedence
// over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn reports a non-fatal condition.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// UndefinedMetricWarning is raised when a metric cannot be computed in the
// usual way and a fallback value is reported instead.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // value reported under this condition
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates an UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Data loading errors
//
// ===========================================================================

// FileNotFoundError is returned when a data file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("wineml: data file not found: %s", e.Path)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *FileNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "FileNotFoundError")
}

// NewFileNotFoundError creates a FileNotFoundError with a stack trace.
func NewFileNotFoundError(path string) error {
	return errors.WithStack(&FileNotFoundError{Path: path})
}

// ParseError is returned when a CSV row does not match the wine schema.
// Line is 1-based and counts the header row; it is 0 when unknown.
type ParseError struct {
	Source string
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("wineml: parse %s: %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("wineml: parse %s: %s", loc, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Int("line", e.Line).
		Str("reason", e.Reason).
		Str("type", "ParseError")
}

// NewParseError creates a ParseError with a stack trace.
func NewParseError(source string, line int, reason string, err error) error {
	return errors.WithStack(&ParseError{Source: source, Line: line, Reason: reason, Err: err})
}

// ===========================================================================
//
//	Training and model errors
//
// ===========================================================================

// TrainingError is returned when the trainer receives unusable input.
type TrainingError struct {
	Op     string
	Reason string
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("wineml: %s: training failed: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *TrainingError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "TrainingError")
}

// NewTrainingError creates a TrainingError with a stack trace.
func NewTrainingError(op, reason string) error {
	return errors.WithStack(&TrainingError{Op: op, Reason: reason})
}

// UnknownFeatureError is returned when a feature name is not part of the schema.
type UnknownFeatureError struct {
	Name  string
	Known []string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("wineml: unknown feature %q (known: %v)", e.Name, e.Known)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *UnknownFeatureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("feature", e.Name).
		Strs("known", e.Known).
		Str("type", "UnknownFeatureError")
}

// NewUnknownFeatureError creates an UnknownFeatureError with a stack trace.
func NewUnknownFeatureError(name string, known []string) error {
	return errors.WithStack(&UnknownFeatureError{Name: name, Known: known})
}

// NotFittedError is returned when Predict or Score is called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("wineml: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError is returned when input dimensions do not match.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("wineml: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError is returned when a parameter fails validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wineml: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError is returned when an argument has an unusable value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("wineml: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when an operation receives no rows.
	ErrEmptyData = New("empty data")
)
