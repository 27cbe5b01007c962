package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wmerrors "github.com/YuminosukeSato/wineml/pkg/errors"
)

func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("hidden")
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message")
	testLogger.Error("error message", ErrAttrKey, fmt.Errorf("boom"))

	assert.NotContains(t, buffer.String(), "hidden")
	assert.True(t, testLogger.ContainsMessage("info message"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "ERROR", entries[2]["level"])
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	child := testLogger.With(ModelNameKey, "FastTreeRegressor")
	child.Info("contextual message", SamplesKey, 100)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "FastTreeRegressor"))
	assert.True(t, testLogger.ContainsField(SamplesKey, 100.0))
	assert.True(t, child.Enabled(context.Background(), LevelDebug))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				var vErr *wmerrors.ValidationError
				assert.True(t, wmerrors.As(err, &vErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerJSON(t *testing.T) {
	defer SetProvider(newSlogProvider(&bytes.Buffer{}, LevelWarn))

	var buf bytes.Buffer
	require.NoError(t, SetupLogger("info", FormatJSON, &buf))

	GetLoggerWithName("loader").Info("Dataset loaded", SamplesKey, 12)
	GetLogger().Debug("suppressed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Dataset loaded", entry["message"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "loader", entry[ComponentKey])
}

func TestSetupLoggerJSONAddsStacktrace(t *testing.T) {
	defer SetProvider(newSlogProvider(&bytes.Buffer{}, LevelWarn))

	var buf bytes.Buffer
	require.NoError(t, SetupLogger("error", FormatJSON, &buf))

	err := wmerrors.Wrap(wmerrors.NewFileNotFoundError("Data/train.csv"), "load")
	GetLogger().Error("failed", ErrAttrKey, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "*errors.FileNotFoundError", entry[CauseAttrKey])
	assert.Contains(t, entry[StacktraceAttrKey], "NewFileNotFoundError")
}

func TestErrFmtHandlerPassesPlainRecords(t *testing.T) {
	defer SetProvider(newSlogProvider(&bytes.Buffer{}, LevelWarn))

	var buf bytes.Buffer
	require.NoError(t, SetupLogger("info", FormatJSON, &buf))
	GetLogger().Info("no error here")

	assert.NotContains(t, buf.String(), CauseAttrKey)
	assert.NotContains(t, buf.String(), StacktraceAttrKey)
}

func TestSetupLoggerConsole(t *testing.T) {
	defer SetProvider(newSlogProvider(&bytes.Buffer{}, LevelWarn))

	var buf bytes.Buffer
	require.NoError(t, SetupLogger("debug", FormatConsole, &buf))

	GetLoggerWithName("ablation").Warn("feature skipped",
		ErrAttrKey, wmerrors.NewUnknownFeatureError("Colour", []string{"Alcohol"}))

	out := buf.String()
	assert.Contains(t, out, "feature skipped")
	assert.Contains(t, out, "Colour")
}

func TestSetupLoggerRejectsUnknownFormat(t *testing.T) {
	err := SetupLogger("info", "xml", nil)
	require.Error(t, err)
}

func TestProviderSwap(t *testing.T) {
	p, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(p)
	defer SetProvider(newSlogProvider(&bytes.Buffer{}, LevelWarn))

	GetLoggerWithName("pipeline").Info("swapped")
	assert.True(t, p.Logger().ContainsField(ComponentKey, "pipeline"))
}
